package storage

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseListQueryDefaults(t *testing.T) {
	q := ParseListQuery(url.Values{})

	assert.Equal(t, bson.M{}, q.Filter)
	assert.Nil(t, q.Projection)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, q.Sort)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 5, q.Limit)
}

func TestParseListQueryEquality(t *testing.T) {
	q := ParseListQuery(url.Values{
		"name":      {"Dr. Smith"},
		"available": {"true"},
	})

	assert.Equal(t, bson.M{"name": "Dr. Smith", "available": true}, q.Filter)
}

func TestParseListQueryOperators(t *testing.T) {
	q := ParseListQuery(url.Values{
		"yearsOfExperience[gte]": {"5"},
		"yearsOfExperience[lte]": {"20"},
	})

	require.IsType(t, bson.M{}, q.Filter["yearsOfExperience"])
	ops := q.Filter["yearsOfExperience"].(bson.M)
	assert.Equal(t, 5, ops["$gte"])
	assert.Equal(t, 20, ops["$lte"])
}

func TestParseListQueryMembership(t *testing.T) {
	q := ParseListQuery(url.Values{
		"areaOfExpertise[in]": {"Orthodontics,Endodontics"},
	})

	assert.Equal(t, bson.M{
		"areaOfExpertise": bson.M{"$in": []interface{}{"Orthodontics", "Endodontics"}},
	}, q.Filter)
}

func TestParseListQueryUnknownOperatorIgnored(t *testing.T) {
	q := ParseListQuery(url.Values{
		"name[regex]": {".*"},
	})

	assert.Empty(t, q.Filter)
}

func TestParseListQuerySelectAndSort(t *testing.T) {
	q := ParseListQuery(url.Values{
		"select": {"name,areaOfExpertise"},
		"sort":   {"-yearsOfExperience,name"},
	})

	assert.Equal(t, bson.M{"name": 1, "areaOfExpertise": 1}, q.Projection)
	assert.Equal(t, bson.D{
		{Key: "yearsOfExperience", Value: -1},
		{Key: "name", Value: 1},
	}, q.Sort)
}

func TestParseListQueryPagination(t *testing.T) {
	q := ParseListQuery(url.Values{
		"page":  {"3"},
		"limit": {"10"},
	})
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 10, q.Limit)

	// Garbage and non-positive values fall back to defaults.
	q = ParseListQuery(url.Values{
		"page":  {"0"},
		"limit": {"abc"},
	})
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 5, q.Limit)
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		total       int64
		next, prev  *PageRef
	}{
		{"first of three", 1, 5, 12, &PageRef{Page: 2, Limit: 5}, nil},
		{"middle", 2, 5, 12, &PageRef{Page: 3, Limit: 5}, &PageRef{Page: 1, Limit: 5}},
		{"last", 3, 5, 12, nil, &PageRef{Page: 2, Limit: 5}},
		{"exact fit has no next", 2, 5, 10, nil, &PageRef{Page: 1, Limit: 5}},
		{"single page", 1, 5, 3, nil, nil},
		{"empty", 1, 5, 0, nil, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Paginate(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.next, p.Next)
			assert.Equal(t, tc.prev, p.Prev)
		})
	}
}
