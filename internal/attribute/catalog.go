package attribute

// Catalog indexes schemas by id. A nil Catalog behaves as an empty one.
type Catalog struct {
	schemas []*Schema
	byID    map[string]*Schema
}

// NewCatalog indexes schemas. Later duplicates of an id are ignored.
func NewCatalog(schemas []*Schema) *Catalog {
	c := &Catalog{byID: make(map[string]*Schema, len(schemas))}
	for _, s := range schemas {
		if s == nil {
			continue
		}
		if _, dup := c.byID[s.ID]; dup {
			continue
		}
		c.byID[s.ID] = s
		c.schemas = append(c.schemas, s)
	}
	return c
}

// Lookup returns the schema for id.
func (c *Catalog) Lookup(id string) (*Schema, bool) {
	if c == nil {
		return nil, false
	}
	s, ok := c.byID[id]
	return s, ok
}

// Name returns the schema name for id, or id itself when the schema is gone.
func (c *Catalog) Name(id string) string {
	if s, ok := c.Lookup(id); ok && s.Name != "" {
		return s.Name
	}
	return id
}

// Schemas returns the indexed schemas in insertion order.
func (c *Catalog) Schemas() []*Schema {
	if c == nil {
		return nil
	}
	return c.schemas
}

// Len returns the number of schemas.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.schemas)
}
