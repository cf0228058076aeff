// Package loader reads OpenAPI-style documents from YAML and produces the
// oas.Document (and its Components table) the resolution engine works
// against.
//
//	doc, err := loader.Load("api.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resolved, err := doc.Components.Schemas["Pet"].Dereference(doc.Components)
//
// The loader never follows references itself and never touches the network:
// it only decodes the current document.
package loader
