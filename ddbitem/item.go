// Package ddbitem converts between DynamoDB attribute-value items and mashes.
//
// Items already returned by the AWS SDK for Go v2 DynamoDB client, for example
// from a GetItem or Query output, can be read as pseudo-objects:
//
//	out, err := client.GetItem(ctx, input)
//	order, err := ddbitem.FromItem(out.Item)
//	status, _ := order.Send("status")
//
// Numbers decode as float64, string and number sets as []string and
// []float64, binary values as []byte, and NULL as nil.
package ddbitem

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/nisimpson/mash"
)

// ErrItemNotFound is returned when a nil item is converted.
var ErrItemNotFound = errors.New("item not found")

// Item is an alias for the dynamodb attribute value map.
type Item = map[string]types.AttributeValue

// FromItem unmarshals item and converts the result into a Mash. Nested map
// and list attributes become nested mashes and slices.
func FromItem(item Item, opts ...func(*mash.Options)) (*mash.Mash, error) {
	if item == nil {
		return nil, ErrItemNotFound
	}

	var data map[string]any
	if err := attributevalue.UnmarshalMap(item, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	m, err := mash.New(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to convert item: %w", err)
	}
	return m, nil
}

// FromItems calls [FromItem] on each item in items. This function is usually
// called to read the items of a Query or Scan output.
func FromItems(items []Item, opts ...func(*mash.Options)) ([]*mash.Mash, error) {
	out := make([]*mash.Mash, 0, len(items))
	for i, item := range items {
		m, err := FromItem(item, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to convert item %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// ToItem marshals m into a dynamodb item. Nested mashes become map
// attributes and slices become list attributes.
func ToItem(m *mash.Mash) (Item, error) {
	if m == nil {
		return nil, ErrItemNotFound
	}

	item, err := attributevalue.MarshalMap(m.ToMap())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}
	return item, nil
}
