package analytics

import "fmt"

// The reports run against Postgres in production and in-memory SQLite in
// tests. Period truncation, timestamp formatting and JSON extraction are the
// only SQL this module uses that differs between the two; everything else is
// written to the common subset.

func (s *Service) isPostgres() bool {
	return s.db.Dialector.Name() == "postgres"
}

// dateExpr renders column as a YYYY-MM-DD calendar day string.
func (s *Service) dateExpr(column string) string {
	if s.isPostgres() {
		return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", column)
	}
	return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", column)
}

// periodExpr renders column truncated to the requested grouping. Unrecognized
// groupings fall back to day.
func (s *Service) periodExpr(column, groupBy string) string {
	if s.isPostgres() {
		switch groupBy {
		case "week":
			return fmt.Sprintf("to_char(date_trunc('week', %s), 'YYYY-MM-DD')", column)
		case "month":
			return fmt.Sprintf("to_char(%s, 'YYYY-MM')", column)
		case "year":
			return fmt.Sprintf("to_char(%s, 'YYYY')", column)
		default:
			return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", column)
		}
	}
	switch groupBy {
	case "week":
		return fmt.Sprintf("strftime('%%Y-%%W', %s)", column)
	case "month":
		return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
	case "year":
		return fmt.Sprintf("strftime('%%Y', %s)", column)
	default:
		return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", column)
	}
}

// tsExpr renders a timestamp expression as YYYY-MM-DD HH:MM:SS so aggregate
// results scan identically across drivers.
func (s *Service) tsExpr(inner string) string {
	if s.isPostgres() {
		return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD HH24:MI:SS')", inner)
	}
	return fmt.Sprintf("strftime('%%Y-%%m-%%d %%H:%%M:%%S', %s)", inner)
}

// jsonNumber extracts a numeric key from a JSON column.
func (s *Service) jsonNumber(column, key string) string {
	if s.isPostgres() {
		return fmt.Sprintf("(%s ->> '%s')::numeric", column, key)
	}
	return fmt.Sprintf("CAST(json_extract(%s, '$.%s') AS REAL)", column, key)
}

// jsonText extracts a key from a JSON column as text.
func (s *Service) jsonText(column, key string) string {
	if s.isPostgres() {
		return fmt.Sprintf("%s ->> '%s'", column, key)
	}
	return fmt.Sprintf("CAST(json_extract(%s, '$.%s') AS TEXT)", column, key)
}
