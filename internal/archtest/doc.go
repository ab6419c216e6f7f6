// Package archtest enforces the layering between models, stores, services
// and handlers. It holds tests only.
package archtest
