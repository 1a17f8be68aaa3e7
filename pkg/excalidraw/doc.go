// Package excalidraw reads Excalidraw whiteboard documents.
//
// Excalidraw files are loosely structured JSON: fields come and go between
// editor versions, and hand-edited or exported documents frequently omit
// attributes. This package therefore never validates a document against a
// schema. Instead it reads the generic JSON tree and maps every field it
// understands onto [Element], substituting a safe default whenever a field is
// missing or has an unexpected type.
//
// # Reading Documents
//
//	doc, err := excalidraw.ReadFile("diagram.excalidraw")
//	if err != nil {
//	    // only I/O failures and invalid JSON syntax end up here
//	}
//	for _, el := range doc.Elements {
//	    fmt.Println(el.Type, el.ID)
//	}
//
// Callers that already hold a decoded tree (for example from an HTTP request
// decoded elsewhere) can use [FromTree] directly; it cannot fail.
//
// # Defaults
//
// Missing or malformed attributes degrade as follows:
//
//	elements      not an array    → no elements
//	strokeStyle   absent          → "solid"
//	strokeWidth   absent          → 1
//	x, y, w, h    absent          → 0
//	bindings      absent / null   → "" (unbound)
//	endArrowhead  absent / null   → "" (no head)
//	roundness     null / 0 / false → not rounded
package excalidraw
