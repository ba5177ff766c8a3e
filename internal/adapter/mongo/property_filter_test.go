package mongo

import (
	"regexp"
	"testing"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// compile turns a Mongo regex into a Go regexp with the same semantics for
// the "i" option, so tests can check what a clause would match.
func compile(t *testing.T, r primitive.Regex) *regexp.Regexp {
	t.Helper()
	prefix := ""
	if r.Options == "i" {
		prefix = "(?i)"
	}
	return regexp.MustCompile(prefix + r.Pattern)
}

func inClause(t *testing.T, filter bson.M, field string) []*regexp.Regexp {
	t.Helper()
	clause, ok := filter[field].(bson.M)
	require.True(t, ok, "expected $in clause on %s", field)
	values, ok := clause["$in"].(bson.A)
	require.True(t, ok)

	out := make([]*regexp.Regexp, 0, len(values))
	for _, v := range values {
		re, ok := v.(primitive.Regex)
		require.True(t, ok)
		out = append(out, compile(t, re))
	}
	return out
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func TestBuildPropertyFilter_NoParams(t *testing.T) {
	filter := buildPropertyFilter(entity.NewPropertyQuery("", "", ""))
	assert.Equal(t, bson.M{"IsStatus": entity.PropertyActive}, filter)
}

func TestBuildPropertyFilter_BlankCityAddsNoLocationClause(t *testing.T) {
	filter := buildPropertyFilter(entity.NewPropertyQuery("   ", "", ""))
	_, ok := filter["location"]
	assert.False(t, ok)
}

func TestBuildPropertyFilter_CitySubstringCaseInsensitive(t *testing.T) {
	filter := buildPropertyFilter(entity.NewPropertyQuery("gurgaon", "", ""))

	re, ok := filter["location"].(primitive.Regex)
	require.True(t, ok)
	loc := compile(t, re)

	assert.True(t, loc.MatchString("Sector 45, Gurgaon"))
	assert.True(t, loc.MatchString("GURGAON"))
	assert.False(t, loc.MatchString("Noida"))
	assert.Equal(t, entity.PropertyActive, filter["IsStatus"])
}

func TestBuildPropertyFilter_CityIsLiteral(t *testing.T) {
	filter := buildPropertyFilter(entity.NewPropertyQuery("a.b (c)", "", ""))
	loc := compile(t, filter["location"].(primitive.Regex))

	assert.True(t, loc.MatchString("x a.b (c) y"))
	assert.False(t, loc.MatchString("axb c"))
}

func TestBuildPropertyFilter_StatusExactMatchAnyOf(t *testing.T) {
	filter := buildPropertyFilter(entity.NewPropertyQuery("", "Ready_to_Move,Sold", ""))
	statuses := inClause(t, filter, "status")

	assert.True(t, matchesAny(statuses, "sold"))
	assert.True(t, matchesAny(statuses, "Sold"))
	assert.True(t, matchesAny(statuses, "ready_to_move"))
	assert.False(t, matchesAny(statuses, "Sol"))
	assert.False(t, matchesAny(statuses, "Unsold"))
}

func TestBuildPropertyFilter_TypeUnderscoreIsSpace(t *testing.T) {
	filter := buildPropertyFilter(entity.NewPropertyQuery("", "", "New_Launch"))
	types := inClause(t, filter, "property_type")

	assert.True(t, matchesAny(types, "New Launch"))
	assert.True(t, matchesAny(types, "new launch"))
	assert.False(t, matchesAny(types, "New_Launch"))
}

func TestBuildPropertyFilter_EmptyListsAddNoClause(t *testing.T) {
	filter := buildPropertyFilter(entity.NewPropertyQuery("", ",", " , "))
	_, hasStatus := filter["status"]
	_, hasType := filter["property_type"]
	assert.False(t, hasStatus)
	assert.False(t, hasType)
}
