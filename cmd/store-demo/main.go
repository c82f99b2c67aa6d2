// Command store-demo composes one fixed checkout: two products, a 10%
// discount, and a credit card payment. It prints a single line describing
// the simulated charge.
package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"github.com/XVaheBabayanX/OnlineStore/internal/domain/discount"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/order"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/payment"
	"github.com/XVaheBabayanX/OnlineStore/internal/domain/product"
)

func main() {
	laptop, err := product.New("Laptop", decimal.NewFromInt(1000))
	if err != nil {
		log.Fatal(err)
	}
	phone, err := product.New("Phone", decimal.NewFromInt(500))
	if err != nil {
		log.Fatal(err)
	}

	o := order.New()
	o.AddProduct(laptop)
	o.AddProduct(phone)

	tenPercent, err := discount.NewPercentage(decimal.NewFromInt(10))
	if err != nil {
		log.Fatal(err)
	}
	o.SetDiscountStrategy(tenPercent)

	creditCard := payment.NewCreditCard(nil)
	if _, err := o.Process(context.Background(), creditCard); err != nil {
		log.Fatal(err)
	}
}
