package query

// QuerySet holds named queries. A name may have more than one sub-query
// (disambiguated by subset spec); TargetResolver tries them in order and
// the first whose path resolves wins (spec §3, §4.2).
type QuerySet struct {
	order   []string
	queries map[string][]*Query
}

// NewQuerySet returns an empty QuerySet.
func NewQuerySet() *QuerySet {
	return &QuerySet{queries: make(map[string][]*Query)}
}

// Add registers a query string under name, appending it as another
// sub-query if name is already present. Returns an error if queryStr
// doesn't parse.
func (qs *QuerySet) Add(name, queryStr string) error {
	q, err := SplitPath(queryStr)
	if err != nil {
		return err
	}
	if _, ok := qs.queries[name]; !ok {
		qs.order = append(qs.order, name)
	}
	qs.queries[name] = append(qs.queries[name], q)
	return nil
}

// Names returns the registered query names in the order they were first
// added.
func (qs *QuerySet) Names() []string {
	return qs.order
}

// QueriesFor returns the sub-queries registered under name, in add order.
func (qs *QuerySet) QueriesFor(name string) []*Query {
	return qs.queries[name]
}

// Size returns the number of distinct names registered.
func (qs *QuerySet) Size() int {
	return len(qs.order)
}
