package taxonomy

// definitions is the single source of truth for the category graph.
// Order matters: ResolveToSlug returns the first label match in this order.
var definitions = []Definition{
	// Top-level sections
	{Slug: "saradesh", Label: "সারাদেশ"},
	{Slug: "politics", Label: "রাজনীতি"},
	{Slug: "economy", Label: "অর্থনীতি"},
	{Slug: "international", Label: "আন্তর্জাতিক"},
	{Slug: "sports", Label: "খেলাধুলা"},
	{Slug: "entertainment", Label: "বিনোদন"},
	{Slug: "education", Label: "শিক্ষা"},
	{Slug: "technology", Label: "প্রযুক্তি"},

	// Divisions under saradesh
	{Slug: "dhaka", Label: "ঢাকা", Parent: "saradesh"},
	{Slug: "chattogram", Label: "চট্টগ্রাম", Parent: "saradesh"},
	{Slug: "rajshahi", Label: "রাজশাহী", Parent: "saradesh"},
	{Slug: "khulna", Label: "খুলনা", Parent: "saradesh"},
	{Slug: "barishal", Label: "বরিশাল", Parent: "saradesh"},
	{Slug: "sylhet", Label: "সিলেট", Parent: "saradesh"},
	{Slug: "rangpur", Label: "রংপুর", Parent: "saradesh"},
	{Slug: "mymensingh", Label: "ময়মনসিংহ", Parent: "saradesh"},

	// Districts
	{Slug: "gazipur", Label: "গাজীপুর", Parent: "dhaka"},
	{Slug: "narayanganj", Label: "নারায়ণগঞ্জ", Parent: "dhaka"},
	{Slug: "tangail", Label: "টাঙ্গাইল", Parent: "dhaka"},
	{Slug: "kishoreganj", Label: "কিশোরগঞ্জ", Parent: "dhaka"},
	{Slug: "coxsbazar", Label: "কক্সবাজার", Parent: "chattogram"},
	{Slug: "cumilla", Label: "কুমিল্লা", Parent: "chattogram"},
	{Slug: "feni", Label: "ফেনী", Parent: "chattogram"},
	{Slug: "noakhali", Label: "নোয়াখালী", Parent: "chattogram"},
	{Slug: "bogura", Label: "বগুড়া", Parent: "rajshahi"},
	{Slug: "pabna", Label: "পাবনা", Parent: "rajshahi"},
	{Slug: "natore", Label: "নাটোর", Parent: "rajshahi"},
	{Slug: "jashore", Label: "যশোর", Parent: "khulna"},
	{Slug: "satkhira", Label: "সাতক্ষীরা", Parent: "khulna"},
	{Slug: "bagerhat", Label: "বাগেরহাট", Parent: "khulna"},
	{Slug: "bhola", Label: "ভোলা", Parent: "barishal"},
	{Slug: "patuakhali", Label: "পটুয়াখালী", Parent: "barishal"},
	{Slug: "moulvibazar", Label: "মৌলভীবাজার", Parent: "sylhet"},
	{Slug: "habiganj", Label: "হবিগঞ্জ", Parent: "sylhet"},
	{Slug: "sunamganj", Label: "সুনামগঞ্জ", Parent: "sylhet"},
	{Slug: "dinajpur", Label: "দিনাজপুর", Parent: "rangpur"},
	{Slug: "kurigram", Label: "কুড়িগ্রাম", Parent: "rangpur"},
	{Slug: "netrokona", Label: "নেত্রকোণা", Parent: "mymensingh"},
	{Slug: "jamalpur", Label: "জামালপুর", Parent: "mymensingh"},

	// Sub-topics
	{Slug: "election", Label: "নির্বাচন", Parent: "politics"},
	{Slug: "cricket", Label: "ক্রিকেট", Parent: "sports"},
	{Slug: "football", Label: "ফুটবল", Parent: "sports"},
	{Slug: "dhallywood", Label: "ঢালিউড", Parent: "entertainment"},
	{Slug: "stock-market", Label: "শেয়ারবাজার", Parent: "economy"},
	{Slug: "admission", Label: "ভর্তি", Parent: "education"},
}
