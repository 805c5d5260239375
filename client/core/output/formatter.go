// Package output provides output formatting functionality for client commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// Format 输出格式
type Format string

const (
	// FormatText 每行 "key: value"（默认）
	FormatText Format = "text"
	// FormatJSON JSON格式
	FormatJSON Format = "json"
	// FormatPretty 美化JSON格式
	FormatPretty Format = "pretty"
	// FormatTable 表格格式
	FormatTable Format = "table"
)

// ParseFormat 解析输出格式名称，空字符串为 text
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatPretty, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (text|json|pretty|table)", name)
	}
}

// Field 一个输出字段
type Field struct {
	Key   string
	Value interface{}
}

// Record 有序的输出字段
type Record []Field

// MarshalJSON 按字段顺序输出对象
func (r Record) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, field := range r {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// Formatter 输出格式化器
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter 创建格式化器
func NewFormatter(format Format, writer io.Writer) *Formatter {
	if writer == nil {
		writer = os.Stdout
	}
	if format == "" {
		format = FormatText
	}
	return &Formatter{format: format, writer: writer}
}

// Print 打印输出
func (f *Formatter) Print(record Record) error {
	switch f.format {
	case FormatJSON:
		return f.printJSON(record, false)
	case FormatPretty:
		return f.printJSON(record, true)
	case FormatTable:
		return f.printTable(record)
	default:
		return f.printText(record)
	}
}

// printJSON 打印JSON格式
func (f *Formatter) printJSON(record Record, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(record, "", "  ")
	} else {
		output, err = json.Marshal(record)
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := fmt.Fprintln(f.writer, string(output)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// printTable 打印两列表格
func (f *Formatter) printTable(record Record) error {
	tw := tabwriter.NewWriter(f.writer, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "Key\tValue"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "---\t-----"); err != nil {
		return fmt.Errorf("write separator: %w", err)
	}
	for _, field := range record {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", field.Key, formatValue(field.Value)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}

// printText 打印纯文本格式
func (f *Formatter) printText(record Record) error {
	for _, field := range record {
		if _, err := fmt.Fprintf(f.writer, "%s: %s\n", field.Key, formatValue(field.Value)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// formatValue 格式化值
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int, int64, uint, uint64:
		return fmt.Sprintf("%d", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return "-"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
