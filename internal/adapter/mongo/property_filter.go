package mongo

import (
	"regexp"

	"github.com/sachin24864/RealEstate-Website/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildPropertyFilter turns a normalized listing query into a Mongo filter.
// Only active records are ever matched. City is a case-insensitive substring
// of location; status and type values are case-insensitive exact matches,
// OR-ed within each field.
func buildPropertyFilter(q entity.PropertyQuery) bson.M {
	filter := bson.M{"IsStatus": entity.PropertyActive}

	if q.City != "" {
		filter["location"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.City), Options: "i"}
	}
	if in := exactMatchAny(q.Statuses); in != nil {
		filter["status"] = bson.M{"$in": in}
	}
	if in := exactMatchAny(q.Types); in != nil {
		filter["property_type"] = bson.M{"$in": in}
	}

	return filter
}

func exactMatchAny(values []string) bson.A {
	if len(values) == 0 {
		return nil
	}
	out := make(bson.A, 0, len(values))
	for _, v := range values {
		out = append(out, primitive.Regex{Pattern: "^" + regexp.QuoteMeta(v) + "$", Options: "i"})
	}
	return out
}
