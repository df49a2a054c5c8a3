package kerml

// AsType returns the embedded type record. The method is promoted to every
// kind that embeds Type, which is what makes TypeOf work without
// enumerating kinds.
func (t *Type) AsType() *Type { return t }

// AsFeature returns the embedded feature record.
func (f *Feature) AsFeature() *Feature { return f }

// AsConnector returns the embedded connector record.
func (c *Connector) AsConnector() *Connector { return c }

// AsBehavior returns the embedded behavior record.
func (b *Behavior) AsBehavior() *Behavior { return b }

// TypeOf returns the Type record embedded in e, or nil when e is not a
// type-like element (relationship edges, ranges, packages and so on).
func TypeOf(e Element) *Type {
	if v, ok := e.(interface{ AsType() *Type }); ok {
		return v.AsType()
	}
	return nil
}

// FeatureOf returns the Feature record embedded in e, or nil when e is not
// feature-like.
func FeatureOf(e Element) *Feature {
	if v, ok := e.(interface{ AsFeature() *Feature }); ok {
		return v.AsFeature()
	}
	return nil
}

// ConnectorOf returns the Connector record embedded in e, or nil when e is
// not a connector kind.
func ConnectorOf(e Element) *Connector {
	if v, ok := e.(interface{ AsConnector() *Connector }); ok {
		return v.AsConnector()
	}
	return nil
}

// BehaviorOf returns the Behavior record embedded in e, or nil when e is
// not a behavior kind.
func BehaviorOf(e Element) *Behavior {
	if v, ok := e.(interface{ AsBehavior() *Behavior }); ok {
		return v.AsBehavior()
	}
	return nil
}
