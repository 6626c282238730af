package cmd

import (
	"fmt"

	"wealthlab/internal/pricing"
	"wealthlab/types"

	"github.com/spf13/cobra"
)

var (
	priceSpot, priceStrike, priceYears, priceRate, priceSigma float64
	priceKind                                                 string
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price a European option with Black-Scholes",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := types.OptionKind(priceKind)
		p, err := pricing.Price(priceSpot, priceStrike, priceYears, priceRate, priceSigma, kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s S=%g K=%g T=%g r=%g sigma=%g  price %.4f  intrinsic %.4f\n",
			kind, priceSpot, priceStrike, priceYears, priceRate, priceSigma, p, pricing.Intrinsic(priceSpot, priceStrike, kind))
		return nil
	},
}

func init() {
	f := priceCmd.Flags()
	f.Float64Var(&priceSpot, "spot", 0, "underlying price")
	f.Float64Var(&priceStrike, "strike", 0, "strike price")
	f.Float64Var(&priceYears, "years", 30.0/365, "time to expiry in years")
	f.Float64Var(&priceRate, "rate", 0.015, "risk-free rate")
	f.Float64Var(&priceSigma, "sigma", 0.2, "annualized volatility")
	f.StringVar(&priceKind, "kind", string(types.Call), "call or put")
	_ = priceCmd.MarkFlagRequired("spot")
	_ = priceCmd.MarkFlagRequired("strike")
}
