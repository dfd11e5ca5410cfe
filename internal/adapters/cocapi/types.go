package cocapi

// clanResponse mirrors the subset of the remote clan payload we read.
// Members with a missing tag or name are dropped at decode time rather
// than poisoning the whole roster.
type clanResponse struct {
	Tag        string   `json:"tag"`
	Name       string   `json:"name"`
	MemberList []member `json:"memberList"`
}

type member struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
	// Pointer so an absent trophies field is distinguishable from a
	// legitimate zero score.
	Trophies *int `json:"trophies"`
}
