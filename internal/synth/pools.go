package synth

var maleFirstNames = []string{
	"James", "John", "Robert", "Michael", "William", "David", "Richard",
	"Joseph", "Thomas", "Charles", "Daniel", "Matthew", "Anthony", "Mark",
	"Paul", "Steven", "Andrew", "Kenneth", "George", "Joshua", "Kevin",
	"Brian", "Edward", "Ronald", "Timothy", "Jason", "Jeffrey", "Ryan",
	"Jacob", "Gary", "Nicholas", "Eric", "Stephen", "Jonathan", "Larry",
	"Justin", "Scott", "Brandon", "Benjamin", "Samuel",
}

var femaleFirstNames = []string{
	"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara",
	"Susan", "Jessica", "Sarah", "Karen", "Lisa", "Nancy", "Betty",
	"Margaret", "Sandra", "Ashley", "Kimberly", "Emily", "Donna",
	"Michelle", "Carol", "Amanda", "Dorothy", "Melissa", "Deborah",
	"Stephanie", "Rebecca", "Sharon", "Laura", "Cynthia", "Kathleen",
	"Amy", "Angela", "Shirley", "Anna", "Brenda", "Pamela", "Emma",
	"Nicole", "Helen",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores", "Green",
	"Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
	"Carter", "Roberts",
}

var loremWords = []string{
	"analysis", "theory", "method", "research", "study", "concept",
	"practice", "system", "model", "structure", "process", "approach",
	"framework", "principle", "application", "fundamentals", "overview",
	"introduction", "advanced", "topics", "problems", "techniques",
	"evaluation", "design", "development", "review", "survey", "material",
	"coursework", "laboratory", "seminar", "lecture", "assessment",
	"submission", "reading", "discussion", "project", "exercise",
}
