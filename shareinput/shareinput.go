package shareinput

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/vitalvas/polyrecon/lagrange"
)

const (
	// MetadataKey is the reserved top-level key holding n and k.
	MetadataKey = "keys"

	MinBase = 2
	MaxBase = 36
)

// Metadata is the optional "keys" object of an input document.
type Metadata struct {
	// N is the number of samples the document claims to carry.
	N int `json:"n"`
	// K is the number of samples needed to fix the polynomial (degree k-1).
	K int `json:"k"`
}

type entry struct {
	Base  json.Number `json:"base"`
	Value *string     `json:"value"`
}

// Sample is one decoded entry of the input document.
type Sample struct {
	// Key is the entry's key as written in the document.
	Key   string
	Base  int
	Value string
	Point lagrange.Point
}

// Input is a decoded document. Samples are kept sorted by ascending x.
type Input struct {
	Metadata *Metadata
	samples  []Sample
}

// DecodeFile reads and decodes the input document at path.
func DecodeFile(path string) (*Input, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %s: %w", path, err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads a JSON document of the form
//
//	{"keys": {"n": 4, "k": 3}, "1": {"base": "10", "value": "4"}, ...}
//
// where every non-metadata key is a decimal x-coordinate and its value is
// the y-coordinate written in the given base.
func Decode(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	raw, err := readObject(data)
	if err != nil {
		return nil, err
	}

	in := &Input{}

	if meta, ok := raw[MetadataKey]; ok {
		var m Metadata
		if err := json.Unmarshal(meta, &m); err != nil {
			return nil, malformed(MetadataKey, "metadata must be an object with integer n and k", err)
		}
		in.Metadata = &m
	}

	keys := maps.Keys(raw)
	sort.Strings(keys)

	for _, key := range keys {
		if key == MetadataKey {
			continue
		}

		sample, err := decodeSample(key, raw[key])
		if err != nil {
			return nil, err
		}
		in.samples = append(in.samples, sample)
	}

	sort.Slice(in.samples, func(i, j int) bool {
		if c := in.samples[i].Point.X.Cmp(in.samples[j].Point.X); c != 0 {
			return c < 0
		}
		return in.samples[i].Key < in.samples[j].Key
	})

	return in, nil
}

// readObject splits the top-level object into its entries.
// A key may appear only once.
func readObject(data []byte) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, malformed("", "document is not a JSON object", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, malformed("", "document is not a JSON object", nil)
	}

	raw := make(map[string]json.RawMessage)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, malformed("", "document is not a JSON object", err)
		}

		key, ok := tok.(string)
		if !ok {
			return nil, malformed("", "document is not a JSON object", nil)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, malformed(key, "entry is not valid JSON", err)
		}

		if _, seen := raw[key]; seen {
			return nil, malformed(key, "duplicate key", nil)
		}
		raw[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, malformed("", "document is not a JSON object", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformed("", "unexpected data after the document", err)
	}

	return raw, nil
}

func decodeSample(key string, data json.RawMessage) (Sample, error) {
	x, ok := new(big.Int).SetString(key, 10)
	if !ok {
		return Sample{}, malformed(key, "key is not a decimal integer", nil)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Sample{}, malformed(key, "entry must be an object with base and value", err)
	}

	if e.Base == "" {
		return Sample{}, malformed(key, "missing base", nil)
	}
	if e.Value == nil {
		return Sample{}, malformed(key, "missing value", nil)
	}

	base, err := parseBase(e.Base.String())
	if err != nil {
		return Sample{}, malformed(key, err.Error(), nil)
	}

	y, err := decode(*e.Value, base)
	if err != nil {
		return Sample{}, malformed(key, err.Error(), nil)
	}

	return Sample{
		Key:   key,
		Base:  base,
		Value: *e.Value,
		Point: lagrange.Point{X: x, Y: y},
	}, nil
}

// DecodeValue parses value, written in the given base, into an exact integer.
// A leading sign is allowed; digits above 9 are letters in either case.
func DecodeValue(value, base string) (*big.Int, error) {
	b, err := parseBase(base)
	if err != nil {
		return nil, malformed("", err.Error(), nil)
	}

	y, err := decode(value, b)
	if err != nil {
		return nil, malformed("", err.Error(), nil)
	}

	return y, nil
}

func parseBase(base string) (int, error) {
	b, err := strconv.Atoi(strings.TrimSpace(base))
	if err != nil {
		return 0, fmt.Errorf("invalid base %q", base)
	}

	if b < MinBase || b > MaxBase {
		return 0, fmt.Errorf("base %d out of range [%d, %d]", b, MinBase, MaxBase)
	}

	return b, nil
}

func decode(value string, base int) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New("empty value")
	}

	y, ok := new(big.Int).SetString(value, base)
	if !ok {
		return nil, fmt.Errorf("value %q is not a base-%d number", value, base)
	}

	return y, nil
}

// Len returns the number of decoded samples.
func (in *Input) Len() int {
	return len(in.samples)
}

// Samples returns the samples selected for interpolation, sorted by ascending x.
//
// In strict mode, when metadata is present, n must match the number of
// samples and 1 <= k <= n; only the k samples with the smallest x are
// returned. Without strict mode every sample is returned and the metadata
// is ignored.
func (in *Input) Samples(strict bool) ([]Sample, error) {
	selected := in.samples

	if strict && in.Metadata != nil {
		n, k := in.Metadata.N, in.Metadata.K

		if n != len(in.samples) {
			return nil, malformed(MetadataKey, fmt.Sprintf("n = %d but document has %d samples", n, len(in.samples)), nil)
		}

		if k < 1 || k > n {
			return nil, malformed(MetadataKey, fmt.Sprintf("k = %d must be within [1, %d]", k, n), nil)
		}

		selected = in.samples[:k]
	}

	out := make([]Sample, len(selected))
	copy(out, selected)

	return out, nil
}

// Points is Samples reduced to the interpolation points.
func (in *Input) Points(strict bool) ([]lagrange.Point, error) {
	samples, err := in.Samples(strict)
	if err != nil {
		return nil, err
	}

	points := make([]lagrange.Point, len(samples))
	for i, s := range samples {
		points[i] = s.Point
	}

	return points, nil
}
