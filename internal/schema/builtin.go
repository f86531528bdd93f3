package schema

// builtinSchemas lists every compiled-in schema bundle. Adding a release means
// adding its constructor here.
var builtinSchemas = []func() *VersionedSchema{
	schemaV0_102_0,
}

// Builtin returns fresh copies of all compiled-in schemas.
func Builtin() []*VersionedSchema {
	out := make([]*VersionedSchema, 0, len(builtinSchemas))
	for _, build := range builtinSchemas {
		out = append(out, build())
	}
	return out
}

// LoadBuiltin registers every compiled-in schema and binds the latest alias.
func LoadBuiltin(r *Registry) {
	for _, s := range Builtin() {
		r.RegisterSchema(s)
	}
	r.Finalize()
}
