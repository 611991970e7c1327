package filters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	gojsonq "github.com/thedevsaddam/gojsonq/v2"
)

// QueryOpts selects and aggregates report records with gojsonq.
type QueryOpts struct {
	From      string   // "directories" (default) or "files"
	Where     []string // conditions like "size < 100000", combined with AND
	SortBy    string
	SortOrder string // asc (default) or desc
	Limit     int
	Select    []string
	Pluck     string
	Aggregate string // sum, avg, min, max or count
	Prop      string // property for sum/avg/min/max, default "size"
	Raw       bool
}

// Query runs opts against the JSON form of rep and formats the result.
func Query(rep Report, opts QueryOpts) (string, error) {
	data, err := rep.JSON()
	if err != nil {
		return "", fmt.Errorf("jsonq: encoding report: %w", err)
	}
	return QueryJSON(data, opts)
}

// QueryJSON runs opts against an encoded report.
func QueryJSON(data []byte, opts QueryOpts) (string, error) {
	from := opts.From
	if from == "" {
		from = "directories"
	}
	if from != "directories" && from != "files" {
		return "", fmt.Errorf("jsonq: unknown collection %q (want directories or files)", from)
	}

	jq := gojsonq.New().Reader(bytes.NewReader(data)).From(from)

	for _, cond := range opts.Where {
		key, op, val, err := parseWhereCondition(cond)
		if err != nil {
			return "", err
		}
		jq.Where(key, op, val)
	}

	if len(opts.Select) > 0 {
		jq.Select(opts.Select...)
	}

	if opts.SortBy != "" {
		if opts.SortOrder == "desc" {
			jq.SortBy(opts.SortBy, "desc")
		} else {
			jq.SortBy(opts.SortBy)
		}
	}

	if opts.Limit > 0 {
		jq.Limit(opts.Limit)
	}

	prop := opts.Prop
	if prop == "" {
		prop = "size"
	}

	var result interface{}
	switch opts.Aggregate {
	case "":
		if opts.Pluck != "" {
			result = jq.Pluck(opts.Pluck)
		} else {
			result = jq.Get()
		}
	case "sum":
		result = jq.Sum(prop)
	case "avg":
		result = jq.Avg(prop)
	case "min":
		result = jq.Min(prop)
	case "max":
		result = jq.Max(prop)
	case "count":
		result = jq.Count()
	default:
		return "", fmt.Errorf("jsonq: unknown aggregate %q", opts.Aggregate)
	}

	if jq.Error() != nil {
		return "", fmt.Errorf("jsonq: %w", jq.Error())
	}

	if opts.Raw {
		return formatRaw(result), nil
	}
	return formatJSON(result)
}

// parseWhereCondition splits "key op value". Numeric values become float64,
// the type decoded JSON numbers have, so both ordering and equality match.
func parseWhereCondition(cond string) (string, string, interface{}, error) {
	parts := strings.Fields(cond)
	if len(parts) < 3 {
		return "", "", nil, fmt.Errorf("jsonq: invalid where condition: %s (expected 'key op value')", cond)
	}

	key, op := parts[0], parts[1]
	valStr := strings.Join(parts[2:], " ")

	var val interface{}
	if f, err := strconv.ParseFloat(valStr, 64); err == nil {
		val = f
	} else {
		val = strings.Trim(valStr, "\"'")
	}

	if op == "==" {
		op = "="
	}
	return key, op, val, nil
}

func formatJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

func formatRaw(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val + "\n"
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d\n", int64(val))
		}
		return fmt.Sprintf("%v\n", val)
	case int:
		return fmt.Sprintf("%d\n", val)
	case nil:
		return "null\n"
	case []interface{}:
		var sb strings.Builder
		for _, item := range val {
			sb.WriteString(formatRaw(item))
		}
		return sb.String()
	default:
		b, _ := json.Marshal(val)
		return string(b) + "\n"
	}
}
