package depcontainer_test

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/ezachrisen/depcontainer"
	"github.com/ezachrisen/depcontainer/cel"
	"github.com/ezachrisen/depcontainer/fields"
)

// Example showing a container of company fields that is shown only for
// business customers
func Example() {

	// Step 1: Create the container and its rules
	c := depcontainer.New([]depcontainer.Field{
		fields.NewAttribute("company_name"),
		fields.NewAttribute("vat_id"),
	}, "company").DependsOn("type", "business")

	// Step 2: Evaluate it against a stored resource
	res, err := c.EvaluateForDisplay(depcontainer.Data{"type": "business"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Pass)

	// Step 3: Check it against submitted data
	req := depcontainer.Form(url.Values{"type": {"personal"}})
	fmt.Println(c.AreDependenciesSatisfied(req))
	// Output:
	// true
	// false
}

// Example showing how the child fields are filled only when the rules hold
// for the submitted data
func ExampleContainer_Fill() {

	c := depcontainer.New([]depcontainer.Field{fields.NewAttribute("vat_id")}, "company").
		DependsOn("type", "business")

	for _, typ := range []string{"personal", "business"} {
		model := depcontainer.Data{}
		req := depcontainer.Form(url.Values{"type": {typ}, "vat_id": {"DE123"}})

		cb, err := c.Fill(req, model)
		if err != nil {
			fmt.Println(err)
			return
		}
		if cb != nil {
			if err := cb(); err != nil {
				fmt.Println(err)
				return
			}
		}
		fmt.Printf("%s: %v\n", typ, model["vat_id"])
	}
	// Output:
	// personal: <nil>
	// business: DE123
}

// Example showing the metadata sent to the presentation layer
func ExampleContainer_MarshalJSON() {

	c := depcontainer.New([]depcontainer.Field{fields.NewAttribute("vat_id")}, "company").
		DependsOn("type", "business")

	if err := c.ResolveForDisplay(depcontainer.Data{"type": "business", "vat_id": "DE123"}); err != nil {
		fmt.Println(err)
		return
	}

	b, err := json.Marshal(c)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(b))
	// Output: {"component":"dependency-container","attribute":"company","showOnIndex":false,"fields":[{"component":"text-field","attribute":"vat_id","value":"DE123"}],"dependencies":[{"field":"type","property":"type","value":"business","satisfied":true}]}
}

// Example showing a rule written as a CEL expression
func ExampleContainer_DependsOnExpr() {

	c := depcontainer.New(nil, "adult", depcontainer.WithEvaluator(cel.NewEvaluator())).
		DependsOnExpr("age", `int(value) >= 18`)

	if err := c.Compile(); err != nil {
		fmt.Println(err)
		return
	}

	for _, age := range []string{"16", "18"} {
		req := depcontainer.Form(url.Values{"age": {age}})
		fmt.Println(age, c.AreDependenciesSatisfied(req))
	}
	// Output:
	// 16 false
	// 18 true
}

// Example showing a polymorphic relation matched by its type
func ExampleMorphType() {

	type comment struct {
		Body            string
		CommentableID   int
		CommentableType string
	}

	c := depcontainer.New(nil, "post_fields").DependsOn("commentable", "Post")

	res, err := c.EvaluateForDisplay(depcontainer.NewStruct(comment{
		Body:            "hi",
		CommentableID:   4,
		CommentableType: `App\Models\Post`,
	}))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Pass, res.Rules[0].Discriminated)
	// Output: true true
}
