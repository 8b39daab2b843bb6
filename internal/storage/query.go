package storage

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultPage  = 1
	defaultLimit = 5
)

// ListQuery is the parsed form of a list endpoint's query string: an
// equality/range filter, an optional field projection, a sort order and a
// page window.
type ListQuery struct {
	Filter     bson.M
	Projection bson.M
	Sort       bson.D
	Page       int
	Limit      int
}

// PageRef points a client at an adjacent page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries the next/prev descriptors returned alongside list
// results. Absent fields mean there is no page in that direction.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// reserved query parameters that never become filter fields
var reservedParams = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// ParseListQuery translates an API query string into a ListQuery. Supported
// shapes:
//
//	?yearsOfExperience[gte]=5      range operators gt, gte, lt, lte
//	?areaOfExpertise[in]=a,b       set membership (comma separated)
//	?available=true                field equality
//	?select=name,areaOfExpertise   projection
//	?sort=-createdAt,name          sort keys, "-" prefix for descending
//	?page=2&limit=10               pagination (defaults 1 and 5)
func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Filter: bson.M{},
		Page:   defaultPage,
		Limit:  defaultLimit,
	}

	for key, vals := range values {
		if len(vals) == 0 || reservedParams[key] {
			continue
		}
		field, op, ok := splitOperator(key)
		if !ok {
			continue
		}
		raw := vals[0]
		switch op {
		case "":
			q.Filter[field] = coerceValue(raw)
		case "in":
			parts := strings.Split(raw, ",")
			members := make([]interface{}, 0, len(parts))
			for _, p := range parts {
				members = append(members, coerceValue(p))
			}
			mergeOperator(q.Filter, field, "$in", members)
		default:
			mergeOperator(q.Filter, field, "$"+op, coerceValue(raw))
		}
	}

	if sel := values.Get("select"); sel != "" {
		q.Projection = bson.M{}
		for _, f := range strings.Split(sel, ",") {
			if f = strings.TrimSpace(f); f != "" {
				q.Projection[f] = 1
			}
		}
	}

	q.Sort = parseSort(values.Get("sort"))

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}

	return q
}

// FindOptions renders the query as mongo find options.
func (q ListQuery) FindOptions() *options.FindOptions {
	opts := options.Find().
		SetSort(q.Sort).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))
	if q.Projection != nil {
		opts.SetProjection(q.Projection)
	}
	return opts
}

// Paginate computes the next/prev descriptors for a page window over total
// matching records.
func Paginate(page, limit int, total int64) Pagination {
	var p Pagination
	if int64(page*limit) < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}

// splitOperator separates "field[op]" keys into field and operator. A plain
// key comes back with an empty operator. Unknown operators are rejected.
func splitOperator(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, "", true
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", false
	}
	field = key[:open]
	op = key[open+1 : len(key)-1]
	switch op {
	case "gt", "gte", "lt", "lte", "in":
		return field, op, true
	}
	return "", "", false
}

func mergeOperator(filter bson.M, field, op string, value interface{}) {
	if existing, ok := filter[field].(bson.M); ok {
		existing[op] = value
		return
	}
	filter[field] = bson.M{op: value}
}

// coerceValue converts query string values to the types mongo compares with:
// numbers and booleans where they parse, strings otherwise.
func coerceValue(raw string) interface{} {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func parseSort(raw string) bson.D {
	if raw == "" {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	var sort bson.D
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if strings.HasPrefix(f, "-") {
			sort = append(sort, bson.E{Key: f[1:], Value: -1})
		} else {
			sort = append(sort, bson.E{Key: f, Value: 1})
		}
	}
	if len(sort) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return sort
}
