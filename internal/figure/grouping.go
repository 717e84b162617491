package figure

import (
	"slices"
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/goliatone/go-chartgen/pkg/dataset"
)

const rowColumn = "__row"

// group is the set of rows sharing one value per grouping column.
type group struct {
	rows   []int
	values map[string]string
}

func (g group) value(column string) string {
	return g.values[column]
}

// orderValues returns the distinct values of a column: those listed in
// category_orders first, in listed order, then the rest in first appearance.
func orderValues(col *dataset.Column, listed []string) []string {
	present := make(map[string]bool)
	var appearance []string
	for _, key := range col.Distinct() {
		s := dataset.KeyString(key)
		if !present[s] {
			present[s] = true
			appearance = append(appearance, s)
		}
	}
	out := make([]string, 0, len(appearance))
	used := make(map[string]bool, len(listed))
	for _, v := range listed {
		if present[v] && !used[v] {
			out = append(out, v)
			used[v] = true
		}
	}
	for _, v := range appearance {
		if !used[v] {
			out = append(out, v)
		}
	}
	return out
}

// groupRows splits the frame rows by the grouping columns. Rows missing a
// grouping value are dropped. Group values are KeyString forms, the same
// strings orderValues yields. Groups are ordered by the rank of each value in
// orders, column by column.
func groupRows(frame *dataset.Frame, columns []string, orders map[string][]string) []group {
	if len(columns) == 0 {
		rows := make([]int, frame.Len())
		for i := range rows {
			rows[i] = i
		}
		return []group{{rows: rows, values: map[string]string{}}}
	}

	keyed := make([]*dataset.Column, len(columns))
	for i, name := range columns {
		keyed[i] = frame.MustColumn(name)
	}
	var rows []int
	keys := make([][]string, len(columns))
	for r := 0; r < frame.Len(); r++ {
		missing := slices.ContainsFunc(keyed, func(c *dataset.Column) bool { return c.Missing(r) })
		if missing {
			continue
		}
		rows = append(rows, r)
		for i, c := range keyed {
			keys[i] = append(keys[i], dataset.KeyString(c.Key(r)))
		}
	}
	if len(rows) == 0 {
		return nil
	}

	builder := table.NewBuilder(nil).Add(rowColumn, rows)
	for i, name := range columns {
		builder = builder.Add(name, keys[i])
	}
	grouping := table.Grouping(builder.Done())
	for _, name := range columns {
		grouping = table.GroupBy(grouping, name)
	}

	groups := make([]group, 0, len(grouping.Tables()))
	for _, gid := range grouping.Tables() {
		t := grouping.Table(gid)
		members := t.MustColumn(rowColumn).([]int)
		values := make(map[string]string, len(columns))
		for _, name := range columns {
			values[name] = t.MustColumn(name).([]string)[0]
		}
		groups = append(groups, group{rows: append([]int(nil), members...), values: values})
	}

	rank := make(map[string]map[string]int, len(columns))
	for _, name := range columns {
		r := make(map[string]int, len(orders[name]))
		for i, v := range orders[name] {
			r[v] = i
		}
		rank[name] = r
	}
	sort.SliceStable(groups, func(i, j int) bool {
		for _, name := range columns {
			ri, rj := rank[name][groups[i].values[name]], rank[name][groups[j].values[name]]
			if ri != rj {
				return ri < rj
			}
		}
		return false
	})
	return groups
}
