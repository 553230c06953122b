package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// column is one output column and the fmt verb generated programs print it
// with.
type column struct {
	name string
	verb string
}

var columns = []column{
	{"type", "%s"},
	{"simd_flag", "%t"},
	{"buffer_size", "%d"},
	{"branch_factor", "%d"},
	{"leaf_size", "%d"},
	{"seed", "%d"},
	{"target_size", "%d"},
	{"remove_latency", "%s"},
	{"insert_latency", "%s"},
	{"set_latency", "%s"},
	{"access_latency", "%s"},
	{"rank_latency", "%s"},
	{"select_latency", "%s"},
	{"size_bits", "%d"},
	{"resident_bytes", "%d"},
	{"checksum", "%d"},
}

// Latencies are printed with strconv.FormatFloat(us, LatencyFmt,
// LatencyPrec, 64).
const (
	LatencyFmt  byte = 'g'
	LatencyPrec      = 6
)

// Columns returns the output column names of a generated program, in order.
func Columns() []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.name
	}
	return names
}

// Header returns the header line without a trailing newline.
func Header() string {
	return strings.Join(Columns(), "\t")
}

// RowFormat returns the fmt format of one data line, without a trailing
// newline. Latency columns take preformatted strings.
func RowFormat() string {
	verbs := make([]string, len(columns))
	for i, c := range columns {
		verbs[i] = c.verb
	}
	return strings.Join(verbs, "\t")
}

// Latencies holds the average per-operation latency of one step, in
// microseconds.
type Latencies struct {
	Remove float64
	Insert float64
	Set    float64
	Access float64
	Rank   float64
	Select float64
}

// Row is one data line of benchmark output.
type Row struct {
	Type         string
	SIMD         bool
	BufferSize   int
	BranchFactor int
	LeafSize     int
	Seed         uint64
	TargetSize   uint64
	Latency      Latencies
	SizeBits     uint64
	RSSBytes     uint64
	Checksum     uint64
}

// ParseRow parses a data line printed with RowFormat.
func ParseRow(line string) (Row, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) != len(columns) {
		return Row{}, fmt.Errorf("expected %d fields, got %d", len(columns), len(fields))
	}

	p := fieldParser{fields: fields}
	r := Row{
		Type:         fields[0],
		SIMD:         p.boolean(1),
		BufferSize:   p.integer(2),
		BranchFactor: p.integer(3),
		LeafSize:     p.integer(4),
		Seed:         p.unsigned(5),
		TargetSize:   p.unsigned(6),
		Latency: Latencies{
			Remove: p.float(7),
			Insert: p.float(8),
			Set:    p.float(9),
			Access: p.float(10),
			Rank:   p.float(11),
			Select: p.float(12),
		},
		SizeBits: p.unsigned(13),
		RSSBytes: p.unsigned(14),
		Checksum: p.unsigned(15),
	}
	if p.err != nil {
		return Row{}, p.err
	}
	return r, nil
}

// fieldParser keeps the first conversion error.
type fieldParser struct {
	fields []string
	err    error
}

func (p *fieldParser) fail(i int, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("column %s: %w", columns[i].name, err)
	}
}

func (p *fieldParser) boolean(i int) bool {
	v, err := strconv.ParseBool(p.fields[i])
	if err != nil {
		p.fail(i, err)
	}
	return v
}

func (p *fieldParser) integer(i int) int {
	v, err := strconv.Atoi(p.fields[i])
	if err != nil {
		p.fail(i, err)
	}
	return v
}

func (p *fieldParser) unsigned(i int) uint64 {
	v, err := strconv.ParseUint(p.fields[i], 10, 64)
	if err != nil {
		p.fail(i, err)
	}
	return v
}

func (p *fieldParser) float(i int) float64 {
	v, err := strconv.ParseFloat(p.fields[i], 64)
	if err != nil {
		p.fail(i, err)
	}
	return v
}
