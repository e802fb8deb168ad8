package docstring

import "github.com/viant/typedoc/inspector/info"

// RST renders reStructuredText field lists
type RST struct {
	Quote string
}

func (r *RST) Name() string {
	return "rst"
}

func (r *RST) Format(signature *info.Signature, indent string) string {
	quote := quoteOrDefault(r.Quote)
	b := &block{indent: indent}
	b.add(quote, descriptionPlaceholder, "")
	if params := signature.Documented(); len(params) > 0 {
		for _, param := range params {
			b.add(":param "+param.Name+": ["+param.Name+" description]", ":type "+param.Name+": "+param.Type.Text)
		}
		b.add("")
	}
	b.add(":returns: "+returnPlaceholder, ":rtype: "+signature.Result.Text, quote)
	return b.String()
}
