package nytimes

// searchResponse is the article search envelope.
type searchResponse struct {
	Response struct {
		Docs []Doc `json:"docs"`
	} `json:"response"`
}

// Doc is one raw article document as returned by the search API.
type Doc struct {
	PubDate  string `json:"pub_date"`
	Headline struct {
		Main string `json:"main"`
	} `json:"headline"`
	Snippet        string `json:"snippet"`
	SectionName    string `json:"section_name"`
	Source         string `json:"source"`
	NewsDesk       string `json:"news_desk"`
	TypeOfMaterial string `json:"type_of_material"`
	WebURL         string `json:"web_url"`
}
