package docstring

import "github.com/viant/typedoc/inspector/info"

// Google renders Google style Args/Returns sections
type Google struct {
	Quote string
}

func (g *Google) Name() string {
	return "google"
}

func (g *Google) Format(signature *info.Signature, indent string) string {
	quote := quoteOrDefault(g.Quote)
	b := &block{indent: indent}
	b.add(quote+descriptionPlaceholder, "", "Args:")
	params := signature.Documented()
	if len(params) == 0 {
		b.add(nested + noArguments)
	}
	for _, param := range params {
		b.add(nested + param.Name + " (" + param.Type.Text + "): [argument description]")
	}
	b.add("", "Returns:", nested+signature.Result.Text+": "+returnPlaceholder, quote)
	return b.String()
}
