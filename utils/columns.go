package utils

import "reflect"

// ColumnList returns the list of "db" struct tags of T, in declaration order.
// Used to keep SELECT column lists in sync with the db model structs.
func ColumnList[T any](prefix ...string) []string {
	var dbModel T
	modelType := reflect.TypeOf(dbModel)

	columns := make([]string, 0, modelType.NumField())
	for i := 0; i < modelType.NumField(); i++ {
		tag, ok := modelType.Field(i).Tag.Lookup("db")
		if !ok || tag == "-" {
			continue
		}
		if len(prefix) > 0 {
			tag = prefix[0] + "." + tag
		}
		columns = append(columns, tag)
	}
	return columns
}
