// Package payment defines the substitutable sinks that perform a simulated
// payment for a final order amount.
package payment

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrUnknownMethod is returned when a payment method has no registered
// processor.
var ErrUnknownMethod = errors.New("unknown payment method")

// Method identifies a payment processor variant.
type Method string

const (
	MethodCreditCard Method = "credit_card"
	MethodPayPal     Method = "paypal"
)

// Processor consumes a final amount and performs the payment action. The
// simulated processors emit a single line describing the charge; they hold
// no state about the orders they process.
type Processor interface {
	ProcessPayment(ctx context.Context, amount decimal.Decimal) error
}

// CreditCard simulates a credit card gateway.
type CreditCard struct {
	out io.Writer
}

// NewCreditCard creates a CreditCard processor writing to out. A nil writer
// defaults to stdout.
func NewCreditCard(out io.Writer) *CreditCard {
	if out == nil {
		out = os.Stdout
	}
	return &CreditCard{out: out}
}

// ProcessPayment emits the credit card charge line.
func (p *CreditCard) ProcessPayment(ctx context.Context, amount decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.out, "Processing credit card payment of $%s\n", amount)
	return err
}

// PayPal simulates a PayPal gateway.
type PayPal struct {
	out io.Writer
}

// NewPayPal creates a PayPal processor writing to out. A nil writer defaults
// to stdout.
func NewPayPal(out io.Writer) *PayPal {
	if out == nil {
		out = os.Stdout
	}
	return &PayPal{out: out}
}

// ProcessPayment emits the PayPal charge line.
func (p *PayPal) ProcessPayment(ctx context.Context, amount decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.out, "Processing PayPal payment of $%s\n", amount)
	return err
}

// Registry maps payment methods to processors.
type Registry struct {
	processors map[Method]Processor
}

// NewRegistry creates a Registry with the default simulated processors
// writing to out.
func NewRegistry(out io.Writer) *Registry {
	return &Registry{processors: map[Method]Processor{
		MethodCreditCard: NewCreditCard(out),
		MethodPayPal:     NewPayPal(out),
	}}
}

// Register adds or replaces the processor for a method.
func (r *Registry) Register(m Method, p Processor) {
	r.processors[m] = p
}

// Get returns the processor for the given method, or ErrUnknownMethod.
func (r *Registry) Get(m Method) (Processor, error) {
	p, ok := r.processors[m]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMethod, "%q", m)
	}
	return p, nil
}
