// Copyright © 2026 The Mell authors

package compiler

import "github.com/mell-lang/mell/mell"

// reduceAutoconcat eliminates every placeholder node from the tree.  A
// placeholder marks a run of juxtaposed tokens the parser left unstructured;
// resolution applies operator precedence and associativity over the run and
// installs the result on the current node, which then rescans itself because
// the installed content may contain nested placeholders or a different node
// shape entirely.  Terminates because resolution strictly reduces the
// placeholder count.
func (o *optimizer) reduceAutoconcat(t *mell.Node) error {
	if isCallNamed(t, mell.CCName) {
		// cc is expression-position grouping: the run resolves to a concat
		// that replaces the cc node itself.
		for _, child := range t.Children {
			if isCallNamed(child, mell.AutoconcatName) {
				rep, err := mell.ResolveAutoconcat(child.Children, false)
				if err != nil {
					return err
				}
				t.Adopt(rep)
				return o.reduceAutoconcat(t)
			}
		}
	} else if isCallNamed(t, mell.AutoconcatName) {
		rep, err := mell.ResolveAutoconcat(t.Children, true)
		if err != nil {
			return err
		}
		t.Adopt(rep)
		return o.reduceAutoconcat(t)
	}
	for _, child := range t.Children {
		if err := o.reduceAutoconcat(child); err != nil {
			return err
		}
	}
	return nil
}

func isCallNamed(t *mell.Node, name string) bool {
	return t.V.Kind == mell.KCall && t.V.Str == name
}
