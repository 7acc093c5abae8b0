package recommender

import "github.com/yeonho-dev/course-recommender-go/internal/rag"

// Recommendation is one course entry in the response payload.
type Recommendation struct {
	SubjectName      string `json:"subject_name"`
	Professor        string `json:"professor"`
	Major            string `json:"major"`
	Year             string `json:"year"`
	CourseType       string `json:"course_type"`
	ProfessorPhone   string `json:"professor_phone"`
	ProfessorEmail   string `json:"professor_email"`
	Office           string `json:"office"`
	ConsultationTime string `json:"consultation_time"`
	Classroom        string `json:"classroom"`
	Schedule         string `json:"schedule"`
	Content          string `json:"content"`
}

// Assemble projects retrieved documents into response entries.
// Duplicate courses are removed by subject name in a single stable
// pass: the first (highest ranked) occurrence wins, later ones are
// dropped, and the surviving order matches the retrieval order.
func Assemble(docs []rag.Document) []Recommendation {
	recommendations := make([]Recommendation, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))

	for _, doc := range docs {
		subjectName := doc.Metadata["subject_name"]
		if _, dup := seen[subjectName]; dup {
			continue
		}
		seen[subjectName] = struct{}{}

		recommendations = append(recommendations, Recommendation{
			SubjectName:      subjectName,
			Professor:        doc.Metadata["professor"],
			Major:            doc.Metadata["major"],
			Year:             doc.Metadata["year"],
			CourseType:       doc.Metadata["course_type"],
			ProfessorPhone:   doc.Metadata["professor_phone"],
			ProfessorEmail:   doc.Metadata["professor_email"],
			Office:           doc.Metadata["office"],
			ConsultationTime: doc.Metadata["consultation_time"],
			Classroom:        doc.Metadata["classroom"],
			Schedule:         doc.Metadata["schedule"],
			Content:          doc.Content,
		})
	}

	return recommendations
}
