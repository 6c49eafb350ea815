package ast

import (
	"encoding/json"

	"github.com/hinmeru/jlang/j"
)

// ToJSON renders nodes as an indented JSON document, for cmd/jlang's
// --ast-json flag (SPEC_FULL.md §10.3). Unlike pp.Println's Go-struct-shaped
// dump, every node is tagged with its own "node" kind name so a consumer
// parsing the output doesn't need jlang's Go types to tell one node apart
// from another.
func ToJSON(nodes []Node) ([]byte, error) {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = describe(n)
	}
	return json.MarshalIndent(out, "", "  ")
}

func describeNodes(nodes []Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = describe(n)
	}
	return out
}

func describe(n Node) map[string]any {
	switch v := n.(type) {
	case Literal:
		return map[string]any{"node": "literal", "value": describeValue(v.Value)}
	case Id:
		return map[string]any{"node": "id", "name": v.Name}
	case Op:
		return map[string]any{"node": "op", "symbol": v.Symbol}
	case BinaryId:
		return map[string]any{"node": "binary_id", "name": v.Name}
	case UnaryOp:
		return map[string]any{"node": "unary_op", "op": describe(v.OpNode), "exp": describe(v.Exp)}
	case BinOp:
		return map[string]any{"node": "bin_op", "op": describe(v.OpNode), "lhs": describe(v.Lhs), "rhs": describe(v.Rhs)}
	case Assign:
		return map[string]any{"node": "assign", "name": v.Name, "exp": describe(v.Exp)}
	case IndexAssign:
		return map[string]any{"node": "index_assign", "id": v.Id, "indices": describeNodes(v.Indices), "exp": describe(v.Exp)}
	case Fn:
		return map[string]any{"node": "fn", "params": v.Params, "body": describeNodes(v.Body)}
	case Skip:
		return map[string]any{"node": "skip"}
	case Call:
		return map[string]any{"node": "call", "f": describe(v.F), "args": describeNodes(v.Args)}
	case If:
		return map[string]any{"node": "if", "cond": describe(v.Cond), "stmts": describeNodes(v.Stmts)}
	case While:
		return map[string]any{"node": "while", "cond": describe(v.Cond), "stmts": describeNodes(v.Stmts)}
	case Try:
		return map[string]any{
			"node": "try", "try_stmts": describeNodes(v.TryStmts),
			"err_name": v.ErrName, "catch_stmts": describeNodes(v.CatchStmts),
		}
	case Return:
		return map[string]any{"node": "return", "exp": describe(v.Exp)}
	case Raise:
		return map[string]any{"node": "raise", "exp": describe(v.Exp)}
	case Series:
		return map[string]any{"node": "series", "name": v.Name, "exp": describe(v.Exp)}
	case Dataframe:
		return map[string]any{"node": "dataframe", "cols": describeSeriesList(v.Cols)}
	case Matrix:
		return map[string]any{"node": "matrix", "cols": describeSeriesList(v.Cols)}
	case List:
		return map[string]any{"node": "list", "exps": describeNodes(v.Exps)}
	case Dict:
		return map[string]any{"node": "dict", "keys": v.Keys, "values": describeNodes(v.Values)}
	case Sql:
		return describeSql(v)
	default:
		return map[string]any{"node": "unknown"}
	}
}

func describeSeriesList(cols []Series) []any {
	out := make([]any, len(cols))
	for i, c := range cols {
		out[i] = describe(c)
	}
	return out
}

func describeSql(v Sql) map[string]any {
	m := map[string]any{
		"node": "sql", "op": v.Op, "from": describe(v.From),
		"filters": describeNodes(v.Filters), "group_type": v.GroupType,
		"groups": describeNodes(v.Groups), "ops": describeNodes(v.Ops),
		"sorts": v.Sorts,
	}
	if v.Take != nil {
		m["take"] = describe(v.Take)
	}
	return m
}

// describeValue renders a j.J constant embedded in a Literal node. Series,
// Matrix and DataFrame are summarized by shape rather than dumped
// element-by-element, keeping --ast-json output legible for the column
// literals §4.6 describes.
func describeValue(v j.J) map[string]any {
	switch x := v.(type) {
	case j.Boolean:
		return map[string]any{"type": x.TypeName(), "value": x.Value}
	case j.I64:
		return map[string]any{"type": x.TypeName(), "value": x.Value}
	case j.F64:
		return map[string]any{"type": x.TypeName(), "value": x.Value}
	case j.String:
		return map[string]any{"type": x.TypeName(), "value": x.Value}
	case j.Cat:
		return map[string]any{"type": x.TypeName(), "value": x.Value}
	case j.Date:
		return map[string]any{"type": x.TypeName(), "days": x.Days}
	case j.Time:
		return map[string]any{"type": x.TypeName(), "nanos": x.Nanos}
	case j.Datetime:
		return map[string]any{"type": x.TypeName(), "millis": x.Millis, "timezone": x.Timezone}
	case j.Timestamp:
		return map[string]any{"type": x.TypeName(), "nanos": x.Nanos, "timezone": x.Timezone}
	case j.Duration:
		return map[string]any{"type": x.TypeName(), "nanos": x.Nanos}
	case j.Null:
		return map[string]any{"type": x.TypeName()}
	case j.Series:
		return map[string]any{
			"type": x.TypeName(), "dtype": x.S.DataType().String(),
			"name": x.S.Name(), "len": x.S.Len(),
		}
	case j.Matrix:
		ncols, nrows := x.M.Shape()
		return map[string]any{"type": x.TypeName(), "rows": nrows, "cols": ncols}
	case j.MixedList:
		vals := make([]any, len(x.Values))
		for i, e := range x.Values {
			vals[i] = describeValue(e)
		}
		return map[string]any{"type": x.TypeName(), "values": vals}
	case j.Dict:
		vals := make([]any, len(x.Values))
		for i, e := range x.Values {
			vals[i] = describeValue(e)
		}
		return map[string]any{"type": x.TypeName(), "keys": x.Keys, "values": vals}
	case j.DataFrame:
		cols := x.D.Columns()
		names := make([]string, len(cols))
		for i, c := range cols {
			names[i] = c.Name()
		}
		return map[string]any{"type": x.TypeName(), "columns": names, "rows": x.D.NumRows()}
	case j.Err:
		return map[string]any{"type": x.TypeName(), "message": x.Message}
	default:
		return map[string]any{"type": v.TypeName()}
	}
}

