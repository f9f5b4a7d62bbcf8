package ddragon

// Raw Data Dragon documents. Only the fields the snapshot keeps are decoded.

type championDoc struct {
	Data map[string]struct {
		ID    string `json:"id"`  // icon id, e.g. "MonkeyKing"
		Key   string `json:"key"` // numeric id as a string
		Name  string `json:"name"`
		Title string `json:"title"`
		Blurb string `json:"blurb"`
		Image struct {
			Full string `json:"full"`
		} `json:"image"`
	} `json:"data"`
}

type itemDoc struct {
	Data map[string]struct {
		Name        string             `json:"name"`
		Description string             `json:"description"`
		Plaintext   string             `json:"plaintext"`
		Tags        []string           `json:"tags"`
		Stats       map[string]float64 `json:"stats"`
		Gold        struct {
			Total int `json:"total"`
		} `json:"gold"`
	} `json:"data"`
}

type runeTreeDoc struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Slots []struct {
		Runes []struct {
			ID        int    `json:"id"`
			Key       string `json:"key"`
			Name      string `json:"name"`
			Icon      string `json:"icon"`
			ShortDesc string `json:"shortDesc"`
			LongDesc  string `json:"longDesc"`
		} `json:"runes"`
	} `json:"slots"`
}

type summonerDoc struct {
	Data map[string]struct {
		ID          string `json:"id"`
		Key         string `json:"key"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Image       struct {
			Full string `json:"full"`
		} `json:"image"`
	} `json:"data"`
}

// merakiItem is one entry of Meraki's items.json
type merakiItem struct {
	ID                int                   `json:"id"`
	Name              string                `json:"name"`
	SimpleDescription string                `json:"simpleDescription"`
	Icon              string                `json:"icon"`
	Stats             map[string]merakiStat `json:"stats"`
	Shop              struct {
		Prices struct {
			Total int `json:"total"`
		} `json:"prices"`
		Tags []string `json:"tags"`
	} `json:"shop"`
}

type merakiStat struct {
	Flat        float64 `json:"flat"`
	Percent     float64 `json:"percent"`
	PerLevel    float64 `json:"perLevel"`
	PercentBase float64 `json:"percentBase"`
}

// Item is the canonical item record
type Item struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Plaintext   string    `json:"plaintext,omitempty"`
	Gold        int       `json:"gold"`
	Tags        []string  `json:"tags,omitempty"`
	Stats       ItemStats `json:"stats"`
}

// Champion is the canonical champion record
type Champion struct {
	ID    string `json:"id"` // Data Dragon id, also the icon name
	Key   int    `json:"key"`
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Blurb string `json:"blurb,omitempty"`
}

// Rune is a keystone, minor rune, stat shard or rune tree
type Rune struct {
	ID          int    `json:"id"`
	Key         string `json:"key,omitempty"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"` // path under /cdn/img/
	Description string `json:"description,omitempty"`
	TreeID      int    `json:"treeId,omitempty"` // 0 for trees and shards
}

// SummonerSpell is a summoner spell keyed by its numeric id
type SummonerSpell struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}
