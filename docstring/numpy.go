package docstring

import "github.com/viant/typedoc/inspector/info"

// Numpy renders numpydoc Parameters/Returns sections
type Numpy struct {
	Quote string
}

func (n *Numpy) Name() string {
	return "numpy"
}

func (n *Numpy) Format(signature *info.Signature, indent string) string {
	quote := quoteOrDefault(n.Quote)
	b := &block{indent: indent}
	b.add(quote+descriptionPlaceholder, "", "Parameters", "----------")
	params := signature.Documented()
	if len(params) == 0 {
		b.add(noArguments)
	}
	for _, param := range params {
		b.add(param.Name+" : "+param.Type.Text, nested+"[argument description]")
	}
	b.add("", "Returns", "-------", signature.Result.Text, nested+returnPlaceholder, quote)
	return b.String()
}
