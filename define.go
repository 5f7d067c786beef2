package mdexpand

// defineHeads maps the six recognized definition-form head identifiers to
// the iterator/attribute kind and whether the form defines an iterator
// (true) or an attribute (false). Spec.md §4.3/§6.
var defineHeads = map[string]struct {
	kind       Kind
	isIterator bool
}{
	"define_mode_iterator": {KindMode, true},
	"define_code_iterator": {KindCode, true},
	"define_int_iterator":  {KindInt, true},
	"define_mode_attr":     {KindMode, false},
	"define_code_attr":     {KindCode, false},
	"define_int_attr":      {KindInt, false},
}

// isDefineForm reports whether head names one of the recognized
// define_*_iterator / define_*_attr forms.
func isDefineForm(head string) bool {
	_, ok := defineHeads[head]
	return ok
}

// applyDefine updates registry from a (define_*_iterator|attr NAME
// [...]) form. It never aborts elaboration: a malformed form yields a Bad
// node (spec.md §7) while the registry is left untouched for that name.
func applyDefine(registry *Registry, filename string, form Node) Node {
	head, ok := form.Head()
	if !ok {
		return form
	}
	spec := defineHeads[head]

	if len(form.Children) != 3 {
		return Bad("define form must have exactly a name and a choice/pair list", form)
	}
	nameNode := form.Children[1]
	if nameNode.Kind != KindIdentifier {
		return Bad("define form's second element must be an identifier name", form)
	}
	membersNode := form.Children[2]
	if membersNode.Kind != KindList && membersNode.Kind != KindVector {
		return Bad("define form's third element must be a list or vector of members", form)
	}

	if spec.isIterator {
		choices, err := parseChoices(membersNode)
		if err != nil {
			return Bad(err.Error(), form)
		}
		registry.iterators(spec.kind)[nameNode.Text] = &Iterator{
			Name:    nameNode.Text,
			Kind:    spec.kind,
			Choices: choices,
		}
	} else {
		mapping, order, err := parsePairs(membersNode)
		if err != nil {
			return Bad(err.Error(), form)
		}
		registry.attrs(spec.kind)[nameNode.Text] = &Attribute{
			Name:    nameNode.Text,
			Kind:    spec.kind,
			Mapping: mapping,
			Order:   order,
		}
	}
	return form
}

// parseChoices reads CHOICE members: a bare identifier V (condition
// empty) or a 2-list (V "cond").
func parseChoices(members Node) ([]Choice, error) {
	var choices []Choice
	for _, m := range members.Children {
		switch m.Kind {
		case KindIdentifier:
			choices = append(choices, Choice{Value: m.Text})
		case KindList:
			if len(m.Children) != 2 || m.Children[0].Kind != KindIdentifier {
				return nil, elabChoiceError()
			}
			cond := m.Children[1]
			if cond.Kind != KindString {
				return nil, elabChoiceError()
			}
			choices = append(choices, Choice{Value: m.Children[0].Text, Condition: cond.Text})
		default:
			return nil, elabChoiceError()
		}
	}
	if len(choices) == 0 {
		return nil, elabChoiceError()
	}
	return choices, nil
}

// parsePairs reads PAIR members: a bare identifier K (value empty) or a
// 2-list (K "value").
func parsePairs(members Node) (map[string]string, []string, error) {
	mapping := map[string]string{}
	var order []string
	for _, m := range members.Children {
		switch m.Kind {
		case KindIdentifier:
			mapping[m.Text] = ""
			order = append(order, m.Text)
		case KindList:
			if len(m.Children) != 2 || m.Children[0].Kind != KindIdentifier {
				return nil, nil, elabPairError()
			}
			val := m.Children[1]
			if val.Kind != KindString {
				return nil, nil, elabPairError()
			}
			mapping[m.Children[0].Text] = val.Text
			order = append(order, m.Children[0].Text)
		default:
			return nil, nil, elabPairError()
		}
	}
	return mapping, order, nil
}

func elabChoiceError() error {
	return newError(SenderElaborate, "", 0, 0, nil, "each choice must be an identifier or a (VALUE \"condition\") pair")
}

func elabPairError() error {
	return newError(SenderElaborate, "", 0, 0, nil, "each pair must be an identifier or a (KEY \"value\") pair")
}
