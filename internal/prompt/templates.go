package prompt

import "github.com/nyayalabs/nyaya/internal/doctype"

// Template returns the static drafting skeleton for a document type.
// The second return is false when the type has no template (General),
// in which case the prompt substitutes a generic drafting instruction.
//
// Templates are read-only configuration, initialized at compile time
// and never mutated.
func Template(t doctype.Type) (string, bool) {
	tmpl, ok := templates[t]
	return tmpl, ok
}

var templates = map[doctype.Type]string{
	doctype.DivorcePetition: divorcePetitionTemplate,
	doctype.RentalAgreement: rentalAgreementTemplate,
}

const divorcePetitionTemplate = `IN THE FAMILY COURT AT MUMBAI
PETITION No. / 2024

IN THE MATTER OF

NAME :
AGE :
OCCUPATION :
ADDRESS :
Mobile No.
Email ID ....PETITIONER NO. 1

AND

NAME :
AGE :
OCCUPATION :
ADDRESS :
Mobile No.
Email ID ....PETITIONER NO. 2

A Petition For divorce by mutual consent U/s
(SPECIFY UNDER WHICH ACT, whether)
U/S 13B Of Hindu Marriage Act
Or
U/S 28 Of Special Marriage Act
Or
U/S 10 A Of Divorce Act

The petitioner above named submits this petition praying to state as follows;

1. That the petitioners were married to each other at ......................... on dated.............................. according to the................................rites and customs/ceremonies.
Or before the Marriage Registrar ..............(Name of City/Town)

2. That the petitioner no. 1 before marriage was ..............and petitioner no. 2 was ..................
[State the pre marital status of the parties whether bachelor/ spinster/ divorcee/ widow/ widower.
Mention the maiden name of the wife.
Mention the religion and domicile of the parties
Clearly mention the date since when the parties are staying separately]

3. [State the number of children. Their names and age/ date of birth and custody.]

4. [State the details about pending litigation. Under which section, Act, case number and court. Next date fixed before the competant court.]

5. [State the details about joint immovable property, if any.]

6. CONSENT TERMS
[The consent terms must include what the parties decided about
- The permanent alimony,
- Custody and access of children,
- Division of property/ execution of any regd document in respect of immovable property Exchange of articles/jwellery/utencils etc,
- Withdrawal of pending litigations, and
- Any other term to which the parties are consenting]

7. That the petitioners due hereby declare and confirm that this petition preferred by them is not collusive.

8. That there is no coercion, force, fraud, undue influence, misrepresentation etc. in filing the present petition, and our consent is free.

9. That there is no collusion or connivance between the parties in filing this petition.

10. That this Court has jurisdiction to try and decide this petition as
[Mention clearly how this court has jurisdiction.
- Whether the marriage was solemnized at Mumbai.
- That the parties lastly stayed together at Mumbai.
- The wife is staying at Mumbai.
- Any other reason supported by document.]

11. That the court fee of Rs. 100 is affixed.

12. The petitioners will rely upon the documents, a list whereof is annexed herewith.

13. The petitioners pray that;
a) This Hon'ble court be pleased to dissolve the marriage between the petitioners, solemnized on ............... by the decree of divorce by mutual consent under section ..............................
b) Such other and further relief's as this Hon'ble Court may deem fit and proper in the nature and circumstances of the case;

VERIFICATION

I .............................. age :....................... years, residing at ........... the petitioner no. 1 do hereby solemnly declare that what is stated in the foregoing paragraphs of the petition is true to best of my own knowledge and belief save and except for the legal submission.

Solemnly Declared at ..........
On this ......................(Date)
Signature of the petitioner no. 1

Advocate

I .............................. age :....................... years, residing at .......... ..the petitioner no. 2 do hereby solemnly declare that what is stated in the foregoing paragraphs of the petition is true to best of my own knowledge and belief save and except for the legal submission.

Solemnly Declared at ..........
On this ......................(Date)
Signature of the petitioner no. 2

Advocate

Documents to be attached:
- ID proof of both the parties (Copy of Pan Card/ Driving license /Adhar Card / Election Card/ Passport).
- Marriage proof (Marriage Registration Certificate/ Invitation Card/ Marriage Photograph/ Affidavit of blood relative) (Minimum two documents mandatory).
- Residential proof (Passport/ Adhar Card/ Election Card/ any other permissable document).

Additional Documents if required:
- Birth Certificate of minor child.
- Registered document for transfer of property.
- Copy of receipt if articles, jwellery, or utencils are exchanged.`

const rentalAgreementTemplate = `RENT AGREEMENT

THIS RENT AGREEMENT is made on this __ day of ______, 20__ at _______ BETWEEN ________________ S/o, D/o, W/o __________________, Residing at ___________________ (hereinafter referred to as the "LESSOR") of the ONE PART.

AND

_________________ S/o, D/o, W/o __________________, Residing at ___________________ (hereinafter referred to as the "LESSEE") of the OTHER PART.

The terms "LESSOR" and "LESSEE" shall mean and include their respective heirs, successors, assigns, representatives, etc.

WHEREAS the LESSOR is the absolute owner of the residential/commercial premises bearing No._____________ consisting of ______ situated at _____________ (hereinafter referred to as the "SCHEDULE PREMISES").

AND WHEREAS the LESSEE has approached the LESSOR and requested to let out the SCHEDULE PREMISES for a period of _____ months/years commencing from __________ for residential/commercial purpose, and the LESSOR has agreed to the same on the following terms and conditions.

NOW THIS RENT AGREEMENT WITNESSETH AS FOLLOWS:

1. RENT:
   The LESSEE shall pay to the LESSOR rent at the rate of Rs.______ (Rupees ______________ only) per month, payable in advance on or before the ___ day of each English Calendar month.

2. DURATION:
   This Agreement shall be for a period of ____ months/years commencing from __________ and ending on __________. This Agreement may be renewed for another term by mutual consent of both the parties on such terms and conditions as may be agreed upon by them.

3. SECURITY DEPOSIT:
   The LESSEE has paid to the LESSOR a sum of Rs.______ (Rupees ______________ only) as interest-free refundable security deposit, which shall be refunded by the LESSOR to the LESSEE at the time of vacating the SCHEDULE PREMISES, after deducting therefrom any arrears of rent, electricity, water charges or any other charges payable by the LESSEE under this Agreement or any damages caused to the SCHEDULE PREMISES by the LESSEE.

4. PAYMENT OF ELECTRICITY AND WATER CHARGES:
   The LESSEE shall pay the electricity and water charges as per the respective meter readings on the due dates to the concerned authorities directly.

5. MAINTENANCE CHARGES:
   The LESSEE shall pay the monthly maintenance charges of Rs.______ (Rupees ______________ only) to the [Society/Building/Corporation] directly.

6. USE OF PREMISES:
   The LESSEE shall use the SCHEDULE PREMISES for residential/commercial purpose only and shall not use it for any illegal or immoral purposes. The LESSEE shall not cause any nuisance or annoyance to the neighbors.

7. REPAIRS AND MAINTENANCE:
   The LESSEE shall keep the SCHEDULE PREMISES in good and tenantable condition and shall be responsible for minor repairs. Any major structural repairs shall be the responsibility of the LESSOR.

8. SUB-LETTING:
   The LESSEE shall not sub-let, sub-lease, or assign the SCHEDULE PREMISES or any part thereof to any third party under any circumstances without the prior written consent of the LESSOR.

9. INSPECTION:
   The LESSOR or his authorized representative shall have the right to inspect the SCHEDULE PREMISES after giving reasonable notice to the LESSEE.

10. TERMINATION:
    Either party may terminate this Agreement by giving ____ months' notice in writing to the other party.

11. RETURN OF SCHEDULE PREMISES:
    On the expiry of the term of this Agreement or its earlier termination, the LESSEE shall peacefully and quietly deliver vacant possession of the SCHEDULE PREMISES to the LESSOR in the same condition as it was at the time of taking possession, subject to natural wear and tear.

12. JURISDICTION:
    Any dispute arising out of this Agreement shall be subject to the jurisdiction of the Courts in ___________.

IN WITNESS WHEREOF the parties hereto have set their hands to this Rent Agreement on the day, month and year first above written.

LESSOR                                      LESSEE

_________________                          _________________
(Signature)                                (Signature)

WITNESSES:

1. ________________                        2. ________________
   (Signature)                                (Signature)
   Name:                                      Name:
   Address:                                   Address:`
