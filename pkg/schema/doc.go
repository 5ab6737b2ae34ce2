// Package schema holds the data contracts of a call flow.
//
// It validates graph documents against an embedded JSON Schema and keeps the
// call context consistent: option patches are decoded field by field onto a
// context copy and every enum field is checked against its allowed values.
//
//	doc, _ := schema.DecodeDocument(raw)
//	if err := schema.ValidateDocument(doc); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
//	next, err := schema.ApplyPatch(ctx, map[string]any{"leadType": "fiber"})
package schema
