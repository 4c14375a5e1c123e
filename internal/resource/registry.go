package resource

// Registry returns the descriptors for every managed content entity.
// Administrators are handled by the dedicated auth flow, not listed here.
func Registry() []Descriptor {
	return []Descriptor{
		{
			Name:     "Page",
			Path:     "pages",
			Table:    "pages",
			KeyField: "slug",
			Fields: []Field{
				{Name: "title", Column: "title", Required: true},
				{Name: "slug", Column: "slug", Required: true, Unique: true},
			},
			RequiredMessage: "Title and slug required",
			PublicRead:      true,
		},
		{
			Name:     "ContentBlock",
			Path:     "cntblocks",
			Table:    "content_blocks",
			KeyField: "identifier",
			Fields: []Field{
				{Name: "pageSlug", Column: "page_slug", Required: true},
				{Name: "identifier", Column: "identifier", Required: true, Unique: true},
				{Name: "content", Column: "content", Required: true},
			},
			RequiredMessage: "PageSlug, identifier and content required",
			References: []Reference{
				{Field: "pageSlug", Table: "pages", Column: "slug"},
			},
			PublicRead: true,
		},
		{
			Name:     "Servant",
			Path:     "servants",
			Table:    "servants",
			KeyField: "id",
			Fields: []Field{
				{Name: "name", Column: "name", Required: true},
				{Name: "surname", Column: "surname", Required: true},
				{Name: "email", Column: "email", Unique: true},
				{Name: "phone", Column: "phone", Unique: true},
				{Name: "role", Column: "role"},
				{Name: "birthDate", Column: "birth_date"},
			},
			RequiredMessage: "Name and surname required",
		},
		{
			Name:     "Parishioner",
			Path:     "parishioners",
			Table:    "parishioners",
			KeyField: "id",
			Fields: []Field{
				{Name: "name", Column: "name", Required: true},
				{Name: "surname", Column: "surname", Required: true},
				{Name: "email", Column: "email", Unique: true},
				{Name: "phone", Column: "phone", Unique: true},
				{Name: "birthDate", Column: "birth_date"},
			},
			RequiredMessage: "Name and surname required",
		},
		{
			Name:     "Service",
			Path:     "services",
			Table:    "services",
			KeyField: "identifier",
			Fields: []Field{
				{Name: "title", Column: "title", Required: true},
				{Name: "description", Column: "description", Required: true},
				{Name: "identifier", Column: "identifier", Required: true, Unique: true},
				{Name: "date", Column: "date", Required: true},
				{Name: "time", Column: "time", Required: true},
				{Name: "location", Column: "location", Required: true},
				{Name: "servantId", Column: "servant_id", Required: true},
				{Name: "parishionerId", Column: "parishioner_id", Required: true},
			},
			RequiredMessage: "Title, description, identifier, date, time, location, servantId and parishionerId required",
			References: []Reference{
				{Field: "servantId", Table: "servants", Column: "id"},
				{Field: "parishionerId", Table: "parishioners", Column: "id"},
			},
		},
		{
			Name:     "Event",
			Path:     "events",
			Table:    "events",
			KeyField: "identifier",
			Fields: []Field{
				{Name: "identifier", Column: "identifier", Required: true, Unique: true},
				{Name: "title", Column: "title", Required: true},
				{Name: "description", Column: "description", Required: true},
				{Name: "date", Column: "date", Required: true},
				{Name: "time", Column: "time"},
				{Name: "location", Column: "location", Required: true},
				{Name: "servantId", Column: "servant_id", Required: true},
				{Name: "parishionerId", Column: "parishioner_id", Required: true},
			},
			RequiredMessage: "Identifier, title, description, date, location, servantId and parishionerId required",
			References: []Reference{
				{Field: "servantId", Table: "servants", Column: "id"},
				{Field: "parishionerId", Table: "parishioners", Column: "id"},
			},
		},
		{
			Name:     "News",
			Path:     "news",
			Table:    "news",
			KeyField: "identifier",
			Fields: []Field{
				{Name: "identifier", Column: "identifier", Required: true, Unique: true},
				{Name: "title", Column: "title", Required: true},
				{Name: "content", Column: "content", Required: true},
			},
			RequiredMessage: "Identifier, title and content required",
			PublicRead:      true,
		},
		{
			Name:     "Post",
			Path:     "posts",
			Table:    "posts",
			KeyField: "id",
			Fields: []Field{
				{Name: "title", Column: "title", Required: true},
				{Name: "content", Column: "content", Required: true},
			},
			RequiredMessage: "Title and content required",
			PublicRead:      true,
		},
		{
			Name:     "Need",
			Path:     "needs",
			Table:    "needs",
			KeyField: "id",
			Fields: []Field{
				{Name: "token", Column: "token", Required: true},
				{Name: "title", Column: "title", Required: true},
				{Name: "content", Column: "content", Required: true},
				{Name: "email", Column: "email", Required: true},
				{Name: "phone", Column: "phone"},
				{Name: "name", Column: "name", Required: true},
				{Name: "surname", Column: "surname", Required: true},
			},
			RequiredMessage: "Token, title, content, email, name and surname required",
		},
	}
}

// ByPath returns the descriptor registered for a route segment.
func ByPath(path string) (Descriptor, bool) {
	for _, d := range Registry() {
		if d.Path == path {
			return d, true
		}
	}
	return Descriptor{}, false
}
