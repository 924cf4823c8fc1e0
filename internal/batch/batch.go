// Package batch validates many questions concurrently.
package batch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/answercheck/internal/logger"
	"github.com/njchilds90/answercheck/verify"
)

// Item is one question of a batch. Question holds the JSON question
// object with its answer_spec.
type Item struct {
	ID       string          `json:"id"`
	Question json.RawMessage `json:"question"`
}

// Result pairs an item with its report. Index is the item's position in
// the input.
type Result struct {
	ID     string        `json:"id"`
	Index  int           `json:"index"`
	Report verify.Report `json:"report"`
}

type Summary struct {
	Total       int            `json:"total"`
	Passed      int            `json:"passed"`
	Failed      int            `json:"failed"`
	ByErrorKind map[string]int `json:"by_error_kind,omitempty"`
}

// NewItem wraps a question. A bare answer spec, recognised by a kind field
// and no answer_spec, is wrapped into a question. The id comes from the
// question's id field or is generated.
func NewItem(question []byte) Item {
	q := bytes.TrimSpace(question)
	id := gjson.GetBytes(q, "id").String()
	if id == "" {
		id = uuid.NewString()
	}
	if !gjson.GetBytes(q, "answer_spec").Exists() && gjson.GetBytes(q, "kind").Exists() {
		q = append(append([]byte(`{"answer_spec":`), q...), '}')
	}
	return Item{ID: id, Question: json.RawMessage(q)}
}

// Decode reads questions as a JSON array, as JSON lines, or as a YAML list.
func Decode(r io.Reader) ([]Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return nil, nil
	case data[0] == '[' && gjson.ValidBytes(data):
		var items []Item
		gjson.ParseBytes(data).ForEach(func(_, v gjson.Result) bool {
			items = append(items, NewItem([]byte(v.Raw)))
			return true
		})
		return items, nil
	case data[0] == '{':
		return decodeLines(data)
	}
	return decodeYAML(data)
}

func decodeLines(data []byte) ([]Item, error) {
	var items []Item
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		if !gjson.ValidBytes(b) {
			return nil, fmt.Errorf("line %d: invalid JSON", line)
		}
		items = append(items, NewItem(append([]byte(nil), b...)))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan batch: %w", err)
	}
	return items, nil
}

func decodeYAML(data []byte) ([]Item, error) {
	var docs []any
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse batch as YAML: %w", err)
	}
	items := make([]Item, 0, len(docs))
	for i, d := range docs {
		b, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, NewItem(b))
	}
	return items, nil
}

// Run validates items with at most workers concurrent validations and
// returns results in input order. Items not started before ctx ends are
// reported with an internal error.
func Run(ctx context.Context, engine *verify.Engine, items []Item, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := logger.FromContext(ctx)
	results := make([]Result, len(items))
	group := new(errgroup.Group)
	group.SetLimit(workers)
	for idx := range items {
		item := items[idx]
		group.Go(func() error {
			results[idx] = Result{ID: item.ID, Index: idx, Report: engine.Validate(ctx, item.Question)}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return results, err
	}
	s := Summarize(results)
	log.Info("batch validated", "total", s.Total, "passed", s.Passed, "failed", s.Failed)
	return results, ctx.Err()
}

func Summarize(results []Result) Summary {
	s := Summary{Total: len(results), ByErrorKind: map[string]int{}}
	for _, r := range results {
		if r.Report.OK {
			s.Passed++
			continue
		}
		s.Failed++
		s.ByErrorKind[string(r.Report.ErrorKind)]++
	}
	if len(s.ByErrorKind) == 0 {
		s.ByErrorKind = nil
	}
	return s
}

// ErrorKinds lists the error kinds of a summary in name order.
func (s Summary) ErrorKinds() []string {
	kinds := make([]string, 0, len(s.ByErrorKind))
	for k := range s.ByErrorKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
