package statement

// Representative extracted-text fixtures, one per builtin issuer, modeled on
// the statement layouts each issuer actually prints. The values here are the
// source of truth for the pipeline tests.

const amexStatement = `AMERICAN EXPRESS
Membership Rewards Program
Platinum Card
Prepared for JANE H MORRISON
Card Ending in 1005
Statement Period: July 15, 2024 - August 14, 2024
Payment Due Date: September 8, 2024
Total Amount Due: $3,412.09
Minimum Payment: $35.00
New Charges
07/16/24 WHOLE FOODS MARKET NEW YORK NY $86.12
07/19/24 DELTA AIR LINES ATLANTA $412.00
07/25/24 PAYMENT RECEIVED - THANK YOU $250.00 CR
Total New Charges $498.12`

const chaseStatement = `CHASE
Cardmember Services
www.chase.com
Chase Sapphire Preferred
Statement prepared for DAVID R CHEN
Account ending in 4421
Opening/Closing Date: 07/15/24 - 08/14/24
Payment Due Date: 09/11/24
New Balance: $1,294.88
Minimum Payment Due: $40.00
ACCOUNT ACTIVITY
08/02/24 TRADER JOE'S #552 SEATTLE WA 54.80
08/05/24 NETFLIX.COM 15.49
08/07/24 AUTOMATIC PAYMENT - THANK YOU -500.00
2024 Totals Year-to-Date`

const citiStatement = `Citibank Client Services
www.citi.com
Citi Double Cash Card
Cardholder: MARIA L GONZALES
Card ending in 0093
Billing Period: 07/15/2024-08/14/2024
Payment Due Date: 09/09/2024
Minimum Payment Due: $25.00
Total Amount Due: $842.17
Account Summary
Purchases
08/01/2024 COSTCO WHOLESALE AZUSA CA $210.55
08/03/2024 SHELL OIL 5745 LOS ANGELES CA $48.20
Total purchases this period $258.75`

const bofaStatement = `BANK OF AMERICA
Customized Cash Rewards Card
Account holder: ROBERT T WILSON JR
Account Number: **** **** **** 7731
Activity Period: 07/15/2024 to 08/14/2024
Payment Due Date: 09/11/2024
Total Due: $2,156.40
Transactions
08/04/2024 TARGET 00123 DENVER CO 88.13
08/09/2024 UNITED AIRLINES HOUSTON TX 412.60
08/10/2024 ONLINE PAYMENT (120.00)
Total Transactions for this period`

const hsbcStatement = `HSBC Bank plc
Credit Card Statement
HSBC Premier Card
Primary cardholder: SARAH OKONKWO
Card number: **** **** **** 5512
Statement Period 15 Jul 2024 to 14 Aug 2024
Payment Due Date 8 Sep 2024
Total Amount Due £1,905.31
Your Transactions
16 Jul 2024 TESCO STORES 2214 LONDON 32.50
18 Jul 2024 TFL TRAVEL CHARGE 8.80
20 Jul 2024 PAYMENT RECEIVED 200.00 CR
Summary of interest on your account`

// unknownStatement has no recognizable issuer letterhead but a perfectly
// conventional activity table.
const unknownStatement = `SOMETOWN CREDIT UNION
Monthly Statement
Member ID 004213
Transactions
08/01/2024 GROCERY MART 23.10
08/02/2024 GAS STATION 41.00
08/03/2024 PAYMENT 60.00 CR
Total for this period`
