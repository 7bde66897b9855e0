package model

const ItemTypeSearchEngine = "search_engine"

// SearchEngine is a configured search provider. GET engines carry a query
// template in the uri; POST engines additionally carry the post body
// template.
type SearchEngine struct {
	linkEntry

	Title     *string `mapstructure:"title"`
	URI       *string `mapstructure:"uri"`
	Encoding  *string `mapstructure:"encoding"`
	IsPost    *string `mapstructure:"is_post"`
	Key       *string `mapstructure:"key"`
	PostQuery *string `mapstructure:"post_query"`
	Icon      *string `mapstructure:"icon"`
}

func (*SearchEngine) Datatype() string { return SearchEngineDatatype }
func (*SearchEngine) ItemType() string { return ItemTypeSearchEngine }

func (s *SearchEngine) Properties() map[string]string {
	props := map[string]string{}
	putProp(props, "title", s.Title)
	putProp(props, "uri", s.URI)
	putProp(props, "encoding", s.Encoding)
	putProp(props, "is_post", s.IsPost)
	putProp(props, "key", s.Key)
	putProp(props, "post_query", s.PostQuery)
	putProp(props, "icon", s.Icon)
	return props
}
