/*
Package script resolves node templates against a call context.

Resolution is a fixed pipeline; each step runs exactly once and later steps
may see text introduced by earlier ones:

 1. branch variant selection by lead type
 2. {{CUSTOMER_NAME}} (fallback "there") and {{REP_NAME}}
 3. {{WIRELESS_PRICE}} and {{FIBER_PRICE}} from the pricing table
 4. {{55PLUS_WIRELESS}} and {{55PLUS_FIBER}} from the "55plus" inserts
 5. {{UPGRADE_INFO}} and {{UPGRADE_DETAILS}} from pricing "upgrades"
 6. {{VISIT_DETAILS}} and {{VISIT_ACTION}} by visit type
 7. {{SUMMARY}} with the short call summary
 8. leftover tokens stripped, whitespace collapsed, text trimmed

Option labels only get the {{EVENT_CTA}} substitution.
*/
package script
