package bible

// oldTestamentBooks is the number of books before Matthew.
const oldTestamentBooks = 39

var protestant = []Book{
	{"gen", "Genesis", 50},
	{"exo", "Exodus", 40},
	{"lev", "Leviticus", 27},
	{"num", "Numbers", 36},
	{"deu", "Deuteronomy", 34},
	{"jos", "Joshua", 24},
	{"jdg", "Judges", 21},
	{"rut", "Ruth", 4},
	{"1sa", "1 Samuel", 31},
	{"2sa", "2 Samuel", 24},
	{"1ki", "1 Kings", 22},
	{"2ki", "2 Kings", 25},
	{"1ch", "1 Chronicles", 29},
	{"2ch", "2 Chronicles", 36},
	{"ezr", "Ezra", 10},
	{"neh", "Nehemiah", 13},
	{"est", "Esther", 10},
	{"job", "Job", 42},
	{"psa", "Psalms", 150},
	{"pro", "Proverbs", 31},
	{"ecc", "Ecclesiastes", 12},
	{"sng", "Song of Songs", 8},
	{"isa", "Isaiah", 66},
	{"jer", "Jeremiah", 52},
	{"lam", "Lamentations", 5},
	{"ezk", "Ezekiel", 48},
	{"dan", "Daniel", 12},
	{"hos", "Hosea", 14},
	{"jol", "Joel", 3},
	{"amo", "Amos", 9},
	{"oba", "Obadiah", 1},
	{"jon", "Jonah", 4},
	{"mic", "Micah", 7},
	{"nam", "Nahum", 3},
	{"hab", "Habakkuk", 3},
	{"zep", "Zephaniah", 3},
	{"hag", "Haggai", 2},
	{"zec", "Zechariah", 14},
	{"mal", "Malachi", 4},
	{"mat", "Matthew", 28},
	{"mrk", "Mark", 16},
	{"luk", "Luke", 24},
	{"jhn", "John", 21},
	{"act", "Acts", 28},
	{"rom", "Romans", 16},
	{"1co", "1 Corinthians", 16},
	{"2co", "2 Corinthians", 13},
	{"gal", "Galatians", 6},
	{"eph", "Ephesians", 6},
	{"php", "Philippians", 4},
	{"col", "Colossians", 4},
	{"1th", "1 Thessalonians", 5},
	{"2th", "2 Thessalonians", 3},
	{"1ti", "1 Timothy", 6},
	{"2ti", "2 Timothy", 4},
	{"tit", "Titus", 3},
	{"phm", "Philemon", 1},
	{"heb", "Hebrews", 13},
	{"jas", "James", 5},
	{"1pe", "1 Peter", 5},
	{"2pe", "2 Peter", 3},
	{"1jn", "1 John", 5},
	{"2jn", "2 John", 1},
	{"3jn", "3 John", 1},
	{"jud", "Jude", 1},
	{"rev", "Revelation", 22},
}

var standard = MustCanon(protestant, oldTestamentBooks)

// Standard returns the 66-book Protestant canon.
func Standard() *Canon {
	return standard
}

// legacyIDs maps the book ids used by earlier releases to the current ones.
var legacyIDs = map[string]string{
	"exod":   "exo",
	"deut":   "deu",
	"josh":   "jos",
	"judg":   "jdg",
	"ruth":   "rut",
	"1sam":   "1sa",
	"2sam":   "2sa",
	"1kgs":   "1ki",
	"2kgs":   "2ki",
	"1chr":   "1ch",
	"2chr":   "2ch",
	"ezra":   "ezr",
	"esth":   "est",
	"ps":     "psa",
	"prov":   "pro",
	"eccl":   "ecc",
	"song":   "sng",
	"ezek":   "ezk",
	"joel":   "jol",
	"amos":   "amo",
	"obad":   "oba",
	"jonah":  "jon",
	"nah":    "nam",
	"zeph":   "zep",
	"zech":   "zec",
	"matt":   "mat",
	"mark":   "mrk",
	"luke":   "luk",
	"john":   "jhn",
	"acts":   "act",
	"1cor":   "1co",
	"2cor":   "2co",
	"phil":   "php",
	"1thess": "1th",
	"2thess": "2th",
	"1tim":   "1ti",
	"2tim":   "2ti",
	"titus":  "tit",
	"phlm":   "phm",
	"1pet":   "1pe",
	"2pet":   "2pe",
	"1john":  "1jn",
	"2john":  "2jn",
	"3john":  "3jn",
}
