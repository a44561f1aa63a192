package main

import (
	"fmt"
	"os"

	calc "github.com/hypotheekplanner/mortgage-planner/internal/calculation"
	"github.com/hypotheekplanner/mortgage-planner/internal/config"
	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
)

// Prints, per offer in the configuration's comparison block, the cumulative
// payments year by year next to the benchmark, then the solved break-even rate.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <config-file>")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	if cfg.Comparison == nil {
		fmt.Println("no comparison section")
		return
	}
	cmp := calc.CompareFixedPeriods(*cfg.Comparison)
	if len(cmp.Rows) == 0 {
		fmt.Println("no offers")
		return
	}

	var bench domain.RateOffer
	for _, o := range cfg.Comparison.Offers {
		if o.FixedYears == cmp.BenchmarkYears {
			bench = o
		}
	}

	fmt.Println("Offer,Year,Cumulative,BenchmarkCumulative,Diff")
	for _, row := range cmp.Rows {
		if row.IsBenchmark {
			continue
		}
		for year := 1; year <= cmp.HorizonYears; year++ {
			a := calc.TotalCost(domain.ScenarioInput{
				Principal: cmp.Principal, InitialRate: row.Rate, FixedYears: row.FixedYears,
				FutureRate: row.Rate, Type: cmp.Type, HorizonYears: year,
			}).Total
			b := calc.TotalCost(domain.ScenarioInput{
				Principal: cmp.Principal, InitialRate: bench.Rate, FixedYears: bench.FixedYears,
				FutureRate: bench.Rate, Type: cmp.Type, HorizonYears: year,
			}).Total
			fmt.Printf("%dy,%d,%s,%s,%s\n", row.FixedYears, year, a.StringFixed(0), b.StringFixed(0), b.Sub(a).StringFixed(0))
		}
	}

	fmt.Println()
	for _, row := range cmp.Rows {
		for _, be := range row.BreakEvens {
			flag := ""
			if be.Unrealistic {
				flag = " (unrealistic)"
			}
			fmt.Printf("BreakEven %dy at %s%% vs %dy: future rate %s%%%s\n",
				row.FixedYears, row.Rate, be.BenchmarkYears, be.Rate.StringFixed(4), flag)
		}
	}
	fmt.Printf("Benchmark %dy total %s\n", cmp.BenchmarkYears, cmp.BenchmarkTotal.StringFixed(0))
}
