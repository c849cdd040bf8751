package domain

// Paper is the source entity as it arrives from a corpus dump or scanner.
type Paper struct {
	ArxivID    string   `json:"arxiv_id"`
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Abstract   string   `json:"abstract"`
	Categories []string `json:"categories"`
	Published  string   `json:"published"`
}

// ItemType tags each denormalized row with its storage purpose.
type ItemType string

const (
	TypePaperDetail ItemType = "PAPER_DETAIL"
	TypeCategory    ItemType = "CATEGORY_ITEM"
	TypeAuthor      ItemType = "AUTHOR_ITEM"
	TypeKeyword     ItemType = "KEYWORD_ITEM"
)

// Item is one denormalized row in the paper table. All four variants share
// this shape; omitempty keeps variant-specific attributes off rows that do
// not carry them. Key attributes are hidden from JSON responses.
type Item struct {
	PK     string `dynamodbav:"PK" json:"-"`
	SK     string `dynamodbav:"SK" json:"-"`
	GSI1PK string `dynamodbav:"GSI1PK,omitempty" json:"-"`
	GSI1SK string `dynamodbav:"GSI1SK,omitempty" json:"-"`
	GSI2PK string `dynamodbav:"GSI2PK,omitempty" json:"-"`
	GSI2SK string `dynamodbav:"GSI2SK,omitempty" json:"-"`
	GSI3PK string `dynamodbav:"GSI3PK,omitempty" json:"-"`
	GSI3SK string `dynamodbav:"GSI3SK,omitempty" json:"-"`

	ArxivID    string   `dynamodbav:"arxiv_id" json:"arxiv_id"`
	Title      string   `dynamodbav:"title" json:"title"`
	Authors    []string `dynamodbav:"authors,omitempty" json:"authors,omitempty"`
	Abstract   string   `dynamodbav:"abstract,omitempty" json:"abstract,omitempty"`
	Categories []string `dynamodbav:"categories,omitempty" json:"categories,omitempty"`
	Keywords   []string `dynamodbav:"keywords,omitempty" json:"keywords,omitempty"`
	Published  string   `dynamodbav:"published,omitempty" json:"published,omitempty"`
	ItemType   ItemType `dynamodbav:"item_type" json:"item_type"`
}
