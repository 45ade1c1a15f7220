package issuer

// Builtin profiles for the five supported issuers. Rule order within a field
// encodes reliability: the issuer-specific label first, the generic fallback
// last, expressed as descending Priority. Rules sharing a priority are
// alternative candidates and can make a field ambiguous.

// BuiltinProfiles returns fresh copies of the builtin issuer profiles in
// their canonical registration order.
func BuiltinProfiles() []*Profile {
	return []*Profile{
		amexProfile(),
		chaseProfile(),
		citiProfile(),
		bofaProfile(),
		hsbcProfile(),
	}
}

func amexProfile() *Profile {
	return &Profile{
		ID:          AmericanExpress,
		DisplayName: "American Express",
		Signatures: []Signature{
			{Pattern: "american express"},
			{Pattern: "membership rewards"},
			{Pattern: "card ending in"},
			{Pattern: "amex"},
		},
		Rules: map[Field][]Rule{
			FieldCardholderName: {
				{Pattern: `(?i)^Prepared for (.+)$`, Priority: 2, Scope: ScopeLine},
				{Pattern: `(?i)^Card Member:? (.+)$`, Priority: 1, Scope: ScopeLine},
			},
			FieldCardLast4: {
				{Pattern: `(?i)Card Ending in (\d+)`, Priority: 2},
				{Pattern: `(?i)ending in:? (\d+)`, Priority: 1},
			},
			FieldBillingPeriod: {
				{Pattern: `(?i)Statement Period:? ([A-Za-z]+ \d{1,2}, \d{4} ?[-–] ?[A-Za-z]+ \d{1,2}, \d{4})`, Priority: 2},
				{Pattern: `(?i)For the period:? ([A-Za-z]+ \d{1,2}, \d{4} ?[-–] ?[A-Za-z]+ \d{1,2}, \d{4})`, Priority: 1},
			},
			FieldDueDate: {
				{Pattern: `(?i)Payment Due Date:? ([A-Za-z]+ \d{1,2}, \d{4})`, Priority: 2},
				{Pattern: `(?i)Due Date:? ([A-Za-z]+ \d{1,2}, \d{4})`, Priority: 1},
			},
			FieldAmountDue: {
				{Pattern: `(?i)Total Amount Due:? (\(?\$[\d,]+\.\d{2}\)?)`, Priority: 3},
				{Pattern: `(?i)Amount Due:? (\(?\$[\d,]+\.\d{2}\)?)`, Priority: 2},
				{Pattern: `(?i)New Balance:? (\(?\$[\d,]+\.\d{2}\)?)`, Priority: 1},
			},
			FieldCardVariant: {
				{Pattern: `(Platinum|Gold|Green|Centurion|Blue Cash|EveryDay) Card`, Priority: 1},
			},
		},
		DateFormats: []string{"January 2, 2006", "Jan 2, 2006", "01/02/2006"},
		Currency:    "USD",
		Layout: TransactionLayout{
			HeaderAnchors: []string{"New Charges", "Transactions"},
			FooterAnchors: []string{"Total New Charges", "Fees", "Interest Charged"},
			RowPattern:    `^(\d{2}/\d{2}/\d{2}) (.+?) (\(?\$?[\d,]+\.\d{2}\)?(?: CR)?)$`,
			DateFormats:   []string{"01/02/06"},
		},
	}
}

func chaseProfile() *Profile {
	return &Profile{
		ID:          Chase,
		DisplayName: "Chase",
		Signatures: []Signature{
			{Pattern: "cardmember services"},
			{Pattern: "chase.com"},
			{Pattern: "chase"},
		},
		Rules: map[Field][]Rule{
			FieldCardholderName: {
				{Pattern: `(?i)^Statement prepared for (.+)$`, Priority: 2, Scope: ScopeLine},
				{Pattern: `(?i)^Cardmember:? (.+)$`, Priority: 1, Scope: ScopeLine},
			},
			FieldCardLast4: {
				{Pattern: `(?i)Account ending in (\d+)`, Priority: 2},
				{Pattern: `(?i)Card ending in (\d+)`, Priority: 1},
			},
			FieldBillingPeriod: {
				{Pattern: `(?i)Opening/Closing Date:? (\d{2}/\d{2}/\d{2} ?- ?\d{2}/\d{2}/\d{2})`, Priority: 2},
				{Pattern: `(?i)Statement Period:? (\d{2}/\d{2}/\d{2,4} ?- ?\d{2}/\d{2}/\d{2,4})`, Priority: 1},
			},
			FieldDueDate: {
				{Pattern: `(?i)Payment Due Date:? (\d{2}/\d{2}/\d{2,4})`, Priority: 2},
				{Pattern: `(?i)Due Date:? (\d{2}/\d{2}/\d{2,4})`, Priority: 1},
			},
			FieldAmountDue: {
				{Pattern: `(?i)Total Amount Due:? (\(?\$?[\d,]+\.\d{2}\)?)`, Priority: 3},
				{Pattern: `(?i)New Balance:? (\(?\$?[\d,]+\.\d{2}\)?)`, Priority: 2},
				{Pattern: `(?i)Amount Due:? (\(?\$?[\d,]+\.\d{2}\)?)`, Priority: 1},
			},
			FieldCardVariant: {
				{Pattern: `(Sapphire Preferred|Sapphire Reserve|Freedom Flex|Freedom Unlimited|Freedom|Slate|Ink)`, Priority: 1},
			},
		},
		DateFormats: []string{"01/02/06", "01/02/2006"},
		Currency:    "USD",
		Layout: TransactionLayout{
			HeaderAnchors: []string{"ACCOUNT ACTIVITY", "PURCHASE ACTIVITY"},
			FooterAnchors: []string{"Totals Year-to-Date", "INTEREST CHARGES"},
			RowPattern:    `^(\d{2}/\d{2}/\d{2}) (.+?) (-?[\d,]+\.\d{2})$`,
			DateFormats:   []string{"01/02/06"},
		},
	}
}

func citiProfile() *Profile {
	return &Profile{
		ID:          Citi,
		DisplayName: "Citi",
		Signatures: []Signature{
			{Pattern: "citibank"},
			{Pattern: "citi.com"},
			{Pattern: "citi"},
		},
		Rules: map[Field][]Rule{
			FieldCardholderName: {
				{Pattern: `(?i)^Cardholder:? (.+)$`, Priority: 2, Scope: ScopeLine},
				{Pattern: `(?i)^Customer name:? (.+)$`, Priority: 1, Scope: ScopeLine},
			},
			FieldCardLast4: {
				{Pattern: `(?i)Card ending in (\d+)`, Priority: 2},
				{Pattern: `(?i)ending in (\d+)`, Priority: 1},
			},
			FieldBillingPeriod: {
				{Pattern: `(?i)Billing Period:? (\d{2}/\d{2}/\d{4} ?- ?\d{2}/\d{2}/\d{4})`, Priority: 2},
				{Pattern: `(?i)Statement Period:? (\d{2}/\d{2}/\d{4} ?- ?\d{2}/\d{2}/\d{4})`, Priority: 1},
			},
			FieldDueDate: {
				{Pattern: `(?i)Payment Due Date:? (\d{2}/\d{2}/\d{4})`, Priority: 2},
				{Pattern: `(?i)Due Date:? (\d{2}/\d{2}/\d{4})`, Priority: 1},
			},
			FieldAmountDue: {
				{Pattern: `(?i)Total Amount Due:? (\(?\$?[\d,]+\.\d{2}\)?)`, Priority: 3},
				{Pattern: `(?i)Amount due now:? (\(?\$?[\d,]+\.\d{2}\)?)`, Priority: 2},
				{Pattern: `(?i)Current Due:? (\(?\$?[\d,]+\.\d{2}\)?)`, Priority: 1},
			},
			FieldCardVariant: {
				{Pattern: `(Premier|Prestige|Custom Cash|Double Cash|Simplicity|Rewards\+) Card`, Priority: 1},
			},
		},
		DateFormats: []string{"01/02/2006", "01/02/06"},
		Currency:    "USD",
		Layout: TransactionLayout{
			HeaderAnchors: []string{"Purchases", "Standard Purchases"},
			FooterAnchors: []string{"Total purchases", "Fees charged"},
			RowPattern:    `^(\d{2}/\d{2}/\d{4}) (.+?) (\(?\$?-?[\d,]+\.\d{2}\)?(?: CR)?)$`,
			DateFormats:   []string{"01/02/2006"},
		},
	}
}

func bofaProfile() *Profile {
	return &Profile{
		ID:          BankOfAmerica,
		DisplayName: "Bank of America",
		Signatures: []Signature{
			{Pattern: "bank of america"},
			{Pattern: "bankofamerica.com"},
			{Pattern: "bofa"},
		},
		Rules: map[Field][]Rule{
			FieldCardholderName: {
				{Pattern: `(?i)^Account holder:? (.+)$`, Priority: 2, Scope: ScopeLine},
				{Pattern: `(?i)^Prepared for:? (.+)$`, Priority: 1, Scope: ScopeLine},
			},
			FieldCardLast4: {
				{Pattern: `(?i)Account Number:[* ]+(\d+)`, Priority: 2},
				{Pattern: `(?i)ending in (\d+)`, Priority: 1},
			},
			FieldBillingPeriod: {
				{Pattern: `(?i)Activity Period:? (\d{2}/\d{2}/\d{4} to \d{2}/\d{2}/\d{4})`, Priority: 2},
				{Pattern: `(?i)Statement Period:? (\d{2}/\d{2}/\d{4} ?- ?\d{2}/\d{2}/\d{4})`, Priority: 1},
			},
			FieldDueDate: {
				{Pattern: `(?i)Payment Due Date:? (\d{2}/\d{2}/\d{4})`, Priority: 2},
				{Pattern: `(?i)Due Date:? (\d{2}/\d{2}/\d{4})`, Priority: 1},
			},
			FieldAmountDue: {
				{Pattern: `(?i)Total Due:? (\(?\$?[\d,]+\.\d{2}\)?)`, Priority: 3},
				{Pattern: `(?i)Amount Due:? (\(?\$?[\d,]+\.\d{2}\)?)`, Priority: 2},
				{Pattern: `(?i)Current Balance:? (\(?\$?[\d,]+\.\d{2}\)?)`, Priority: 1},
			},
			FieldCardVariant: {
				{Pattern: `(Customized Cash Rewards|Cash Rewards|Travel Rewards|Premium Rewards|Unlimited Cash) Card`, Priority: 1},
			},
		},
		DateFormats: []string{"01/02/2006", "January 2, 2006"},
		Currency:    "USD",
		Layout: TransactionLayout{
			HeaderAnchors: []string{"Transactions", "Payments and Other Credits"},
			FooterAnchors: []string{"Total Transactions", "TOTAL FEES", "Interest Charged"},
			RowPattern:    `^(\d{2}/\d{2}/\d{4}) (.+?) (\(?-?[\d,]+\.\d{2}\)?)$`,
			DateFormats:   []string{"01/02/2006"},
		},
	}
}

func hsbcProfile() *Profile {
	return &Profile{
		ID:          HSBC,
		DisplayName: "HSBC",
		Signatures: []Signature{
			{Pattern: "hsbc bank"},
			{Pattern: "hsbc.co.uk"},
			{Pattern: "hsbc"},
		},
		Rules: map[Field][]Rule{
			FieldCardholderName: {
				{Pattern: `(?i)^Primary cardholder:? (.+)$`, Priority: 2, Scope: ScopeLine},
				{Pattern: `(?i)^Account name:? (.+)$`, Priority: 1, Scope: ScopeLine},
			},
			FieldCardLast4: {
				{Pattern: `(?i)Card number:?[* ]+(\d+)`, Priority: 2},
				{Pattern: `(?i)ending in:? (\d+)`, Priority: 1},
			},
			FieldBillingPeriod: {
				{Pattern: `(?i)Statement Period:? (\d{1,2} [A-Za-z]{3} \d{4} to \d{1,2} [A-Za-z]{3} \d{4})`, Priority: 2},
				{Pattern: `(?i)Account summary for the period:? (\d{1,2} [A-Za-z]{3} \d{4} to \d{1,2} [A-Za-z]{3} \d{4})`, Priority: 1},
			},
			FieldDueDate: {
				{Pattern: `(?i)Payment Due Date:? (\d{1,2} [A-Za-z]{3} \d{4})`, Priority: 2},
				{Pattern: `(?i)Due Date:? (\d{1,2} [A-Za-z]{3} \d{4})`, Priority: 1},
			},
			FieldAmountDue: {
				{Pattern: `(?i)Total Amount Due:? (\(?£?[\d,]+\.\d{2}\)?(?: CR)?)`, Priority: 2},
				{Pattern: `(?i)Amount Due:? (\(?£?[\d,]+\.\d{2}\)?(?: CR)?)`, Priority: 1},
			},
			FieldCardVariant: {
				{Pattern: `(Premier|Advance|Platinum|Gold) Card`, Priority: 1},
			},
		},
		DateFormats: []string{"2 Jan 2006", "02 Jan 2006", "2 January 2006"},
		Currency:    "GBP",
		Layout: TransactionLayout{
			HeaderAnchors: []string{"Your Transactions", "Transaction Details"},
			FooterAnchors: []string{"Summary of interest", "Total balance"},
			RowPattern:    `^(\d{1,2} [A-Za-z]{3} \d{4}) (.+?) ([\d,]+\.\d{2}(?: CR)?)$`,
			DateFormats:   []string{"2 Jan 2006"},
		},
	}
}

// GenericLayout is the issuer-agnostic transaction layout used when no
// issuer was identified. Transaction scanning still runs with it, so a
// statement with an unknown letterhead but a conventional activity table
// still yields its transactions.
func GenericLayout() TransactionLayout {
	return TransactionLayout{
		HeaderAnchors: []string{"Transactions", "Activity", "Purchases"},
		FooterAnchors: []string{"Total", "Subtotal", "Summary"},
		RowPattern:    `^(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}) (.+?) (\(?\$?-?[\d,]+\.\d{2}\)?(?: CR)?)$`,
		DateFormats:   []string{"01/02/2006", "01/02/06", "1/2/2006", "01-02-2006"},
	}
}

// genericLayoutCompiled is built once; GenericLayout patterns never change.
var genericLayoutCompiled = func() TransactionLayout {
	l := GenericLayout()
	p := Profile{ID: "generic", Layout: l}
	if err := p.compile(); err != nil {
		panic(err)
	}
	return p.Layout
}()

// CompiledGenericLayout returns the process-wide compiled generic layout.
func CompiledGenericLayout() TransactionLayout {
	return genericLayoutCompiled
}
