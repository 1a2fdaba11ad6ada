/*
Package token implements Token contract which holds SRFN balances.

Token contract is a NEP-17 compatible ledger of a fixed supply of 300,000,000
SRFN issued to the owner on deploy. Besides standard transfers it supports
ERC-20 style allowances used by Content and Peering contracts to charge fees,
an initial sale converting received GAS into SRFN taken from the owner's stock
and burning that reduces the total supply.

During the sale one SRFN costs TokenPrice GAS fractions. Payments that are
not a multiple of the price are rejected, so no GAS is kept without issuing
tokens for it.

Every path moving tokens to a contract (transfer, transferFrom, payout and
the Peering reserve allocation) calls onNEP17Payment of the recipient.

The owner links Content and Peering contracts. The first link of a Peering
contract allocates a 20,000,000 SRFN reserve to it. Linked contracts pay
rewards out of their own balances with the payout method.

# Contract notifications

Transfer notification. This is a NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification. It is produced when the owner sets an allowance.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer

Conversion notification. It is produced when GAS paid during the sale is
converted into SRFN.

	Conversion:
	  - name: from
	    type: Hash160
	  - name: paid
	    type: Integer
	  - name: amount
	    type: Integer

Payout notification. It is produced when a linked contract or the owner pays
tokens out of its reserve.

	Payout:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Withdraw notification. It is produced when the owner withdraws sale proceeds.

	Withdraw:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Link notification. It is produced when Content or Peering contract is linked.

	Link:
	  - name: name
	    type: String
	  - name: contract
	    type: Hash160
*/
package token
