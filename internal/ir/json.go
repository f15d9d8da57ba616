package ir

import (
	"encoding/json"
	"fmt"
)

// Every block marshals with its BlockKind as a "type" field so the tree can
// be reconstructed without reflection on the reader side. The alias types
// avoid infinite recursion into the custom marshallers.

func (h *HeadingBlock) MarshalJSON() ([]byte, error) {
	type alias HeadingBlock
	return json.Marshal(struct {
		Type BlockKind `json:"type"`
		*alias
	}{KindHeading, (*alias)(h)})
}

func (p *ParagraphBlock) MarshalJSON() ([]byte, error) {
	type alias ParagraphBlock
	return json.Marshal(struct {
		Type BlockKind `json:"type"`
		*alias
	}{KindParagraph, (*alias)(p)})
}

func (l *ListBlock) MarshalJSON() ([]byte, error) {
	type alias ListBlock
	return json.Marshal(struct {
		Type BlockKind `json:"type"`
		*alias
	}{KindList, (*alias)(l)})
}

func (t *TableBlock) MarshalJSON() ([]byte, error) {
	type alias TableBlock
	return json.Marshal(struct {
		Type BlockKind `json:"type"`
		*alias
	}{KindTable, (*alias)(t)})
}

func (f *FigureBlock) MarshalJSON() ([]byte, error) {
	type alias FigureBlock
	return json.Marshal(struct {
		Type BlockKind `json:"type"`
		*alias
	}{KindFigure, (*alias)(f)})
}

func (b *PageBreakBlock) MarshalJSON() ([]byte, error) {
	type alias PageBreakBlock
	return json.Marshal(struct {
		Type BlockKind `json:"type"`
		*alias
	}{KindPageBreak, (*alias)(b)})
}

// UnmarshalBlock decodes one serialized block into its concrete type.
func UnmarshalBlock(data []byte) (Block, error) {
	var probe struct {
		Type BlockKind `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("read block type: %w", err)
	}

	switch probe.Type {
	case KindHeading:
		var h HeadingBlock
		if err := json.Unmarshal(data, &h); err != nil {
			return nil, err
		}
		return &h, nil
	case KindParagraph:
		var p ParagraphBlock
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return &p, nil
	case KindList:
		var l ListBlock
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, err
		}
		return &l, nil
	case KindTable:
		var t TableBlock
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return &t, nil
	case KindFigure:
		var f FigureBlock
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return &f, nil
	case KindPageBreak:
		var b PageBreakBlock
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return &b, nil
	default:
		return nil, fmt.Errorf("unknown block type %q", probe.Type)
	}
}

func unmarshalBlocks(raws []json.RawMessage) ([]Block, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	blocks := make([]Block, 0, len(raws))
	for _, raw := range raws {
		b, err := UnmarshalBlock(raw)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func (h *HeadingBlock) UnmarshalJSON(data []byte) error {
	type alias HeadingBlock
	aux := struct {
		*alias
		Children []json.RawMessage `json:"children"`
	}{alias: (*alias)(h)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	children, err := unmarshalBlocks(aux.Children)
	if err != nil {
		return err
	}
	h.Children = children
	return nil
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type alias Document
	aux := struct {
		*alias
		Body []json.RawMessage `json:"body"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	body, err := unmarshalBlocks(aux.Body)
	if err != nil {
		return err
	}
	d.Body = body
	return nil
}
