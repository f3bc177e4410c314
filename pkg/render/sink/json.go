package sink

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/cardstack/pkg/stack"
)

// JSONOption configures JSON and YAML rendering.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	config *stack.Config
	style  string
	labels []string
}

// WithJSONConfig records the layout configuration that produced the frames,
// enabling reproducible re-rendering.
func WithJSONConfig(cfg stack.Config) JSONOption {
	return func(r *jsonRenderer) { r.config = &cfg }
}

// WithJSONStyle records the style name for round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONLabels records card labels by item index.
func WithJSONLabels(labels []string) JSONOption { return func(r *jsonRenderer) { r.labels = labels } }

// Document is the serialized form of a set of frames.
type Document struct {
	Config *stack.Config `json:"config,omitempty"`
	Style  string        `json:"style,omitempty"`
	Labels []string      `json:"labels,omitempty"`
	Frames []stack.Frame `json:"frames"`
}

// RenderJSON serializes frames as an indented JSON document.
func RenderJSON(frames []stack.Frame, opts ...JSONOption) ([]byte, error) {
	data, err := json.MarshalIndent(newDocument(frames, opts...), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RenderYAML serializes the same document as [RenderJSON] in YAML. Keys and
// their order match the JSON output.
func RenderYAML(frames []stack.Frame, opts ...JSONOption) ([]byte, error) {
	data, err := json.Marshal(newDocument(frames, opts...))
	if err != nil {
		return nil, err
	}
	// JSON is valid YAML; decoding into a node keeps key order.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

// blockStyle drops the flow and quoting styles recorded from JSON syntax.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// ReadJSON parses a document written by [RenderJSON]. YAML input is
// accepted as well.
func ReadJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return Document{}, err
	}
	normalized, err := json.Marshal(generic)
	if err != nil {
		return Document{}, err
	}
	err = json.Unmarshal(normalized, &doc)
	return doc, err
}

func newDocument(frames []stack.Frame, opts ...JSONOption) Document {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if frames == nil {
		frames = []stack.Frame{}
	}
	return Document{Config: r.config, Style: r.style, Labels: r.labels, Frames: frames}
}
