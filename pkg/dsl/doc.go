/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing call-flow graphs.

It allows developers to define scripted calls using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON documents. This is particularly useful for unit
testing and for scripts generated from other data.

Example usage:

	b := dsl.New()

	b.Add("opening").
		Kind(domain.KindPermission).
		Script("Hi {{CUSTOMER_NAME}}, this is {{REP_NAME}}. Do you have a minute?").
		Option("Yes, wireless", "pitch").Set("leadType", "wireless").
		Option("Not now", "callback")

	b.Add("pitch").
		Kind(domain.KindPitch).
		Script("Plans start at {{WIRELESS_PRICE}}.").
		Variant("fiber", "Fiber starts at {{FIBER_PRICE}}.")

	b.Pricing("wireless", "starting", "$25/mo")

	graph, err := b.Build()
	// ... pass graph to callflow.New(graph)
*/
package dsl
