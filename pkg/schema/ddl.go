package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Columns returns column names of a model in field order.
func Columns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var res []string
	for i := 0; i < t.NumField(); i++ {
		if col := t.Field(i).Tag.Get("db"); col != "" {
			res = append(res, col)
		}
	}
	return res
}

// Taxon DDL methods
func (t Taxon) TableDDL() string {
	return generateDDL(t, t.TableName())
}

func (t Taxon) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_taxa_parent_id ON taxa(parent_id);",
		"CREATE INDEX IF NOT EXISTS idx_taxa_ord ON taxa(ord);",
	}
}

func (t Taxon) TableName() string {
	return "taxa"
}

// NameEntry DDL methods
func (ne NameEntry) TableDDL() string {
	return generateDDL(ne, ne.TableName())
}

func (ne NameEntry) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_name_entries_name_lower ON name_entries(name_lower);",
		"CREATE INDEX IF NOT EXISTS idx_name_entries_name_length ON name_entries(name_length);",
		"CREATE INDEX IF NOT EXISTS idx_name_entries_taxon_id ON name_entries(taxon_id);",
	}
}

func (ne NameEntry) TableName() string {
	return "name_entries"
}

// Metadata DDL methods
func (m Metadata) TableDDL() string {
	return generateDDL(m, m.TableName())
}

func (m Metadata) IndexDDL() []string {
	return []string{}
}

func (m Metadata) TableName() string {
	return "metadata"
}
