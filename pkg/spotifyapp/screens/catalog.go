package screens

// Track is one row of the home track list.
type Track struct {
	ID       string
	Title    string
	Artists  string
	Duration string
	CoverURL string
}

// Playlist is the playlist shown in the home hero banner.
type Playlist struct {
	Title    string
	Subtitle string
	Meta     string
	ImageURL string
}

// Catalog is the in-memory data the home screen renders.
type Catalog struct {
	Hero   Playlist
	Tracks []Track
}

// NowPlaying returns the track shown on the now-playing card, the last
// track of the list.
func (c Catalog) NowPlaying() (Track, bool) {
	if len(c.Tracks) == 0 {
		return Track{}, false
	}
	return c.Tracks[len(c.Tracks)-1], true
}

// DemoCatalog returns the demo playlist.
func DemoCatalog() Catalog {
	return Catalog{
		Hero: Playlist{
			Title:    "Today's Top Hits",
			Subtitle: "The hottest 50. Cover: Coldplay",
			Meta:     "Spotify · 35,212,210 saves · 2h 50m",
			ImageURL: "https://es.rollingstone.com/wp-content/uploads/2024/10/La-gran-aventura-interestelar-de-Coldplay-1-min.jpg",
		},
		Tracks: []Track{
			{
				ID:       "still-with-you",
				Title:    "Still with you",
				Artists:  "Jung kook",
				Duration: "2:47",
				CoverURL: "https://i.scdn.co/image/ab67616d00001e02a7f42c375578df426b37638d",
			},
			{
				ID:       "everybodys-changing",
				Title:    "Everybody's Changing",
				Artists:  "Keane",
				Duration: "3:30",
				CoverURL: "https://i.scdn.co/image/ab67616d0000b2737d6cd95a046a3c0dacbc7d33",
			},
			{
				ID:       "cardigan",
				Title:    "Cardigan",
				Artists:  "Taylor Swift",
				Duration: "4:00",
				CoverURL: "https://cdn-images.dzcdn.net/images/cover/290abe93bdda84bb8b170f30a4998c4c/1900x1900-000000-80-0-0.jpg",
			},
			{
				ID:       "demons",
				Title:    "Demons",
				Artists:  "Imagine Dragons",
				Duration: "2:58",
				CoverURL: "https://i.scdn.co/image/ab67616d0000b273b2b2747c89d2157b0b29fb6a",
			},
			{
				ID:       "clocks",
				Title:    "Clocks",
				Artists:  "Coldplay",
				Duration: "3:12",
				CoverURL: "https://cdn-images.dzcdn.net/images/cover/5ba1787e1ec36dbbca38ff01fea8fb21/1900x1900-000000-80-0-0.jpg",
			},
		},
	}
}
