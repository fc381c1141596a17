package docalc_test

import (
	"context"
	"fmt"

	docalc "github.com/gocausal/docalc"
	"github.com/gocausal/docalc/config"
	"github.com/gocausal/docalc/model"
)

// ExampleEngine_P builds the S1 simple-chain model and answers three
// interventionless queries against it.
func ExampleEngine_P() {
	specs := map[string]model.VarSpec{
		"Y": {
			Outcomes: []string{"y", "notY"},
			Table: []model.CPTRow{
				{Outcome: "y", Probability: 0.7},
				{Outcome: "notY", Probability: 0.3},
			},
		},
		"X": {
			Outcomes: []string{"x", "notX"},
			Parents:  []string{"Y"},
			Table: []model.CPTRow{
				{Outcome: "x", ParentOutcomes: []string{"y"}, Probability: 0.9},
				{Outcome: "notX", ParentOutcomes: []string{"y"}, Probability: 0.1},
				{Outcome: "x", ParentOutcomes: []string{"notY"}, Probability: 0.75},
				{Outcome: "notX", ParentOutcomes: []string{"notY"}, Probability: 0.25},
			},
		},
	}
	m, err := model.NewModel("simple_chain", specs)
	if err != nil {
		fmt.Println(err)
		return
	}
	e := docalc.New(m, config.New())
	ctx := context.Background()

	p1, _ := e.P(ctx, model.AssertionSet{model.Obs("X", "x")}, nil)
	p2, _ := e.P(ctx, model.AssertionSet{model.Obs("X", "x")}, model.AssertionSet{model.Obs("Y", "y")})
	p3, _ := e.P(ctx, model.AssertionSet{model.Obs("X", "x"), model.Obs("Y", "y")}, nil)

	fmt.Printf("p(X=x)=%.3f\n", p1)
	fmt.Printf("p(X=x|Y=y)=%.3f\n", p2)
	fmt.Printf("p(X=x,Y=y)=%.3f\n", p3)
	// Output:
	// p(X=x)=0.855
	// p(X=x|Y=y)=0.900
	// p(X=x,Y=y)=0.630
}
