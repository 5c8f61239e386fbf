package literature

import "litshelf/internal/attribute"

// ApplyValue adds value under attributeID on lit and returns lit.
func ApplyValue(lit Literature, attributeID, value string) Literature {
	c := lit.Meta()
	c.Attributes = attribute.Apply(c.Attributes, attributeID, value)
	return lit
}

// RemoveValue removes value under attributeID on lit and returns lit. The
// application disappears with its last value.
func RemoveValue(lit Literature, attributeID, value string) Literature {
	c := lit.Meta()
	c.Attributes = attribute.Remove(c.Attributes, attributeID, value)
	return lit
}

// SetNote replaces the note of the application for attributeID on lit.
func SetNote(lit Literature, attributeID, note string) Literature {
	c := lit.Meta()
	c.Attributes = attribute.SetNote(c.Attributes, attributeID, note)
	return lit
}
