package arrowops

import (
	"github.com/apache/arrow/go/v17/arrow"
)

/*
* Reports whether the two records have the same schema. When fields
* are given only those fields are compared and their positions must
* match in both records.
 */
func RecordSchemasEqual(record1 arrow.Record, record2 arrow.Record, fields ...string) bool {
	if len(fields) == 0 {
		return record1.Schema().Equal(record2.Schema())
	}
	return schemaSubSetEqual(record1.Schema(), record2.Schema(), fields...) &&
		schemaSubSetEqual(record2.Schema(), record1.Schema(), fields...)
}

func schemaSubSetEqual(schema1 *arrow.Schema, schema2 *arrow.Schema, fields ...string) bool {
	for _, name := range fields {
		idxs1 := schema1.FieldIndices(name)
		idxs2 := schema2.FieldIndices(name)
		if len(idxs1) != len(idxs2) {
			return false
		}
		for i := range idxs1 {
			if idxs1[i] != idxs2[i] {
				return false
			}
			if !schema1.Field(idxs1[i]).Equal(schema2.Field(idxs2[i])) {
				return false
			}
		}
	}
	return true
}
