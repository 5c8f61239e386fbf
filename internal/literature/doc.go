// Package literature defines the bibliographic record variants.
//
// Every record is one of six variants sharing [Common] fields and
// distinguished on disk by a "type" tag. The variants form a closed set: the
// [Literature] interface cannot be implemented outside this package. Variant
// specific fields are all optional.
package literature
