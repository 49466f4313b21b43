package dsl

import "github.com/aretw0/hollow/pkg/domain"

// DialogBuilder appends nodes to a dialog. Response helpers attach to the last node.
type DialogBuilder struct {
	dialog  domain.Dialog
	builder *Builder
}

// Say appends a node.
func (d *DialogBuilder) Say(speaker, text string) *DialogBuilder {
	d.dialog.Nodes = append(d.dialog.Nodes, domain.DialogNode{Speaker: speaker, Text: text})
	return d
}

// Choice adds a response that jumps to node next.
func (d *DialogBuilder) Choice(text string, next int, effects ...domain.Effect) *DialogBuilder {
	return d.Response(domain.Response{Text: text, Next: &next, Effects: effects})
}

// ChoiceIf adds a response that is only selectable while req holds.
func (d *DialogBuilder) ChoiceIf(req *domain.Requirement, text string, next int, effects ...domain.Effect) *DialogBuilder {
	return d.Response(domain.Response{Text: text, Requirement: req, Next: &next, Effects: effects})
}

// Leave adds a response that ends the dialog.
func (d *DialogBuilder) Leave(text string, effects ...domain.Effect) *DialogBuilder {
	return d.Response(domain.Response{Text: text, Effects: effects})
}

// Response adds a fully specified response to the last node.
func (d *DialogBuilder) Response(r domain.Response) *DialogBuilder {
	if n := len(d.dialog.Nodes); n > 0 {
		d.dialog.Nodes[n-1].Responses = append(d.dialog.Nodes[n-1].Responses, r)
	}
	return d
}

// End closes the dialog after the last node.
func (d *DialogBuilder) End() *DialogBuilder {
	if n := len(d.dialog.Nodes); n > 0 {
		d.dialog.Nodes[n-1].End = true
	}
	return d
}

// Build returns the underlying domain.Dialog.
func (d *DialogBuilder) Build() domain.Dialog {
	return d.dialog
}
