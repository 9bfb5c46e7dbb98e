package directory

import "time"

// SeedItems returns the tree written to an empty store:
//
//	Documents/
//	  Project Notes/
//	    Tasks.txt
//	  Resume.pdf
//	Photos/
//	  Vacation.jpg
func SeedItems(now time.Time) []Item {
	documentsID := "1"
	photosID := "2"
	projectNotesID := "4"

	newItem := func(id string, name string, kind Kind, parentID *string) Item {
		return Item{
			ID:        id,
			Name:      name,
			Kind:      kind,
			ParentID:  cloneID(parentID),
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return []Item{
		newItem(documentsID, "Documents", KindFolder, nil),
		newItem(photosID, "Photos", KindFolder, nil),
		newItem("3", "Resume.pdf", KindFile, &documentsID),
		newItem(projectNotesID, "Project Notes", KindFolder, &documentsID),
		newItem("5", "Vacation.jpg", KindFile, &photosID),
		newItem("6", "Tasks.txt", KindFile, &projectNotesID),
	}
}
