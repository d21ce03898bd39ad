package domain

import "encoding/json"

// Target is one subreddit the CLI pages through in batch mode.
type Target struct {
	Subreddit string
	Pages     int
}

// Record is the closed set of payloads a Listing can carry.
type Record interface {
	Kind() Kind
	isRecord()
}

// Listing pairs a Kind with its decoded payload. The kind is always derived
// from the payload, so the two cannot disagree.
type Listing struct {
	kind    Kind
	payload Record
}

// NewListing wraps a record.
func NewListing(payload Record) Listing {
	return Listing{kind: payload.Kind(), payload: payload}
}

func (l Listing) Kind() Kind {
	return l.kind
}

func (l Listing) Payload() Record {
	return l.payload
}

// Page returns the payload when it is a ListingData.
func (l Listing) Page() (ListingData, bool) {
	d, ok := l.payload.(ListingData)
	return d, ok
}

// Link returns the payload when it is a LinkData.
func (l Listing) Link() (LinkData, bool) {
	d, ok := l.payload.(LinkData)
	return d, ok
}

// Comment returns the payload when it is a CommentData.
func (l Listing) Comment() (CommentData, bool) {
	d, ok := l.payload.(CommentData)
	return d, ok
}

// MarshalJSON writes the wire shape {"kind": ..., "data": ...}.
func (l Listing) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind Kind   `json:"kind"`
		Data Record `json:"data"`
	}{Kind: l.kind, Data: l.payload})
}

// ListingData is one page of a paginated listing.
//
// Children is nil when the page carried no decodable children and a non-nil
// (possibly empty) slice otherwise.
type ListingData struct {
	Modhash  *string   `json:"modhash,omitempty"`
	Children []Listing `json:"children"`
	After    *string   `json:"after,omitempty"`
	Before   *string   `json:"before,omitempty"`
}

// HasChildren reports whether the children array was present and decoded.
func (d ListingData) HasChildren() bool {
	return d.Children != nil
}

// LinkData is a submitted post.
type LinkData struct {
	Title       string `json:"title"`
	Subreddit   string `json:"subreddit"`
	ID          string `json:"id"`
	Thumbnail   string `json:"thumbnail"`
	URL         string `json:"url"`
	Permalink   string `json:"permalink"`
	Author      string `json:"author"`
	Ups         int    `json:"ups"`
	Downs       int    `json:"downs"`
	Score       int    `json:"score"`
	IsSelf      bool   `json:"is_self"`
	NumComments int    `json:"num_comments"`
}

// CommentData is a comment; Replies holds its child comment page, if any.
type CommentData struct {
	Body     string   `json:"body"`
	Author   string   `json:"author"`
	BodyHTML string   `json:"body_html"`
	Score    int      `json:"score"`
	Ups      int      `json:"ups"`
	Downs    int      `json:"downs"`
	Replies  *Listing `json:"replies,omitempty"`
}

type AccountData struct{}

type MessageData struct{}

type SubredditData struct{}

type AwardData struct{}

type MoreData struct{}

type PromoCampaignData struct{}

func (ListingData) Kind() Kind       { return KindListing }
func (CommentData) Kind() Kind       { return KindComment }
func (AccountData) Kind() Kind       { return KindAccount }
func (LinkData) Kind() Kind          { return KindLink }
func (MessageData) Kind() Kind       { return KindMessage }
func (SubredditData) Kind() Kind     { return KindSubreddit }
func (AwardData) Kind() Kind         { return KindAward }
func (MoreData) Kind() Kind          { return KindMore }
func (PromoCampaignData) Kind() Kind { return KindPromoCampaign }

func (ListingData) isRecord()       {}
func (CommentData) isRecord()       {}
func (AccountData) isRecord()       {}
func (LinkData) isRecord()          {}
func (MessageData) isRecord()       {}
func (SubredditData) isRecord()     {}
func (AwardData) isRecord()         {}
func (MoreData) isRecord()          {}
func (PromoCampaignData) isRecord() {}
