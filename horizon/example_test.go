package horizon_test

import (
	"fmt"

	"github.com/pvaldi/mshoot"
	"github.com/pvaldi/mshoot/horizon"
	"github.com/pvaldi/mshoot/schema"
)

func ExampleFlatten() {
	obj, _ := schema.New(
		schema.Var("x", mshoot.Vector(2), schema.TimeVarying()),
		schema.Par("mass", mshoot.Scalar(1.5)),
	)
	expanded, _ := horizon.Expand(obj, horizon.WithHorizon(3))
	table, _ := horizon.Flatten(expanded)

	for _, name := range table.Names() {
		e, _ := table.Lookup(name)
		fmt.Println(name, e.N)
	}
	// Output:
	// x 3
	// mass 1
}

func ExampleWithFieldHorizon() {
	obj, _ := schema.New(schema.Var("x", mshoot.Scalar(0)))

	// the override forces x across four knots even though it was not
	// declared time-varying
	expanded, _ := horizon.Expand(obj, horizon.WithFieldHorizon("x", 4))

	f, _ := expanded.Field("x")
	fmt.Println(f.Shape(), len(f.Series()))
	// Output:
	// leaf series 4
}
