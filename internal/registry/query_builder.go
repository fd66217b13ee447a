package registry

import (
	"strings"

	"fincache/internal/models"
)

type entryQueryBuilder struct {
	filter Filter
	query  string
	args   []any
	where  []string
}

func buildEntryQuery(filter Filter) (string, []any) {
	builder := &entryQueryBuilder{filter: filter}
	builder.buildSelect()
	builder.buildWhere()
	builder.buildOrder()
	builder.buildLimit()
	return builder.query, builder.args
}

func (b *entryQueryBuilder) buildSelect() {
	b.query = "SELECT " + entryColumns + " FROM entries"
}

func (b *entryQueryBuilder) buildWhere() {
	b.appendDatasetType()
	b.appendSymbol()
	b.appendFrequency()
	b.appendSource()
	b.appendRange()

	if len(b.where) == 0 {
		return
	}
	b.query += " WHERE " + strings.Join(b.where, " AND ")
}

func (b *entryQueryBuilder) buildOrder() {
	b.query += " ORDER BY start_date ASC, last_updated DESC"
}

func (b *entryQueryBuilder) buildLimit() {
	if b.filter.Limit <= 0 {
		return
	}
	b.query += " LIMIT ?"
	b.args = append(b.args, b.filter.Limit)
}

func (b *entryQueryBuilder) appendDatasetType() {
	if b.filter.DatasetType == "" {
		return
	}
	b.where = append(b.where, "dataset_type = ?")
	b.args = append(b.args, string(b.filter.DatasetType))
}

func (b *entryQueryBuilder) appendSymbol() {
	if b.filter.Symbol == "" {
		return
	}
	b.where = append(b.where, "symbol = ?")
	b.args = append(b.args, b.filter.Symbol)
}

func (b *entryQueryBuilder) appendFrequency() {
	if b.filter.Frequency == "" {
		return
	}
	b.where = append(b.where, "frequency = ?")
	b.args = append(b.args, b.filter.Frequency)
}

func (b *entryQueryBuilder) appendSource() {
	if b.filter.Source == "" {
		return
	}
	b.where = append(b.where, "source = ?")
	b.args = append(b.args, b.filter.Source)
}

func (b *entryQueryBuilder) appendRange() {
	if b.filter.Range == nil {
		return
	}
	// Closed-interval intersection: entry.start <= filter.end AND
	// entry.end >= filter.start. Date strings compare lexically.
	b.where = append(b.where, "start_date <= ?", "end_date >= ?")
	b.args = append(b.args,
		b.filter.Range.End.UTC().Format(models.DateLayout),
		b.filter.Range.Start.UTC().Format(models.DateLayout),
	)
}
