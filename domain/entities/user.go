package entities

// ScoreDefinition is a score type allocated to a user by their SRO.
type ScoreDefinition struct {
	ScoreID   string `bson:"score_id"`
	ScoreName string `bson:"score_name"`
}

// User is a mobile app user supervised by an SRO.
type User struct {
	ID        string            `bson:"_id"`
	FirstName string            `bson:"first_name"`
	LastName  string            `bson:"last_name"`
	SROID     string            `bson:"sro_id"`
	Scores    []ScoreDefinition `bson:"scores"`
}

// SRO is a supervising officer account. Managed by the admin portal;
// read-only here.
type SRO struct {
	ID        string `bson:"_id"`
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
}

// FullName returns the SRO's display name.
func (s *SRO) FullName() string {
	return s.FirstName + " " + s.LastName
}
